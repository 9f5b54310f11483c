package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"devblog/pkg/models"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatJSON = "json"
)

var ErrUnknownFormat = errors.New("unknown front matter format")

// ParseFrontMatter splits a content file into its front matter and body.
// YAML is fenced by "---", TOML by "+++", JSON is a leading object.
func ParseFrontMatter(content []byte) (map[string]interface{}, string, string, error) {
	str := normalizeLineEndings(string(content))

	if fm, body, ok := splitFenced(str, "---"); ok {
		var out map[string]interface{}
		if err := yaml.Unmarshal([]byte(fm), &out); err != nil {
			return nil, "", "", fmt.Errorf("yaml front matter: %w", err)
		}
		return sanitizeFrontMatter(out), body, FormatYAML, nil
	}
	if fm, body, ok := splitFenced(str, "+++"); ok {
		var out map[string]interface{}
		if err := toml.Unmarshal([]byte(fm), &out); err != nil {
			return nil, "", "", fmt.Errorf("toml front matter: %w", err)
		}
		return sanitizeFrontMatter(out), body, FormatTOML, nil
	}
	if strings.HasPrefix(strings.TrimSpace(str), "{") {
		dec := json.NewDecoder(strings.NewReader(str))
		var out map[string]interface{}
		if err := dec.Decode(&out); err != nil {
			return nil, "", "", fmt.Errorf("json front matter: %w", err)
		}
		body := strings.TrimSpace(str[dec.InputOffset():])
		return sanitizeFrontMatter(out), body, FormatJSON, nil
	}

	return nil, "", "", ErrUnknownFormat
}

// splitFenced expects the fence on the first line and again on a later line of its own.
func splitFenced(str, fence string) (string, string, bool) {
	if !strings.HasPrefix(str, fence+"\n") {
		return "", "", false
	}
	rest := str[len(fence)+1:]
	if strings.HasPrefix(rest, fence+"\n") || rest == fence {
		return "", strings.TrimSpace(strings.TrimPrefix(rest, fence)), true
	}
	end := strings.Index(rest, "\n"+fence+"\n")
	if end < 0 {
		if !strings.HasSuffix(rest, "\n"+fence) {
			return "", "", false
		}
		end = len(rest) - len(fence) - 1
	}
	fm := rest[:end]
	body := rest[min(end+len(fence)+2, len(rest)):]
	return fm, strings.TrimSpace(body), true
}

// DecodeArticle parses a content file into an Article. The body becomes Content.
func DecodeArticle(content []byte) (models.Article, error) {
	var art models.Article
	fm, body, _, err := ParseFrontMatter(content)
	if err != nil {
		return art, err
	}

	// Round-trip through YAML so every front matter format shares the yaml struct tags.
	raw, err := yaml.Marshal(fm)
	if err != nil {
		return art, err
	}
	if err := yaml.Unmarshal(raw, &art); err != nil {
		return art, fmt.Errorf("decode article: %w", err)
	}
	art.Content = body
	return art, nil
}

// ConstructFileContent renders front matter and body back into a content file.
func ConstructFileContent(fm map[string]interface{}, body string, format string) ([]byte, error) {
	normalizedFM := sanitizeFrontMatter(fm)
	if normalizedFM == nil {
		normalizedFM = map[string]interface{}{}
	}

	var buf bytes.Buffer
	switch format {
	case FormatYAML:
		buf.WriteString("---\n")
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(normalizedFM); err != nil {
			return nil, err
		}
		buf.WriteString("---\n")
	case FormatTOML:
		buf.WriteString("+++\n")
		enc := toml.NewEncoder(&buf)
		if err := enc.Encode(normalizedFM); err != nil {
			return nil, err
		}
		buf.WriteString("+++\n")
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(normalizedFM); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// NewArticleFrontMatter is the scaffold written by "devblog new".
func NewArticleFrontMatter(title, category, author string, now time.Time) map[string]interface{} {
	date := now.UTC().Format("2006-01-02")
	return map[string]interface{}{
		"title":           title,
		"slug":            Slugify(title),
		"category":        category,
		"tags":            []interface{}{},
		"publishedAt":     date,
		"updatedAt":       date,
		"featured":        false,
		"author":          author,
		"metaDescription": "",
		"keywords":        []interface{}{},
	}
}

func sanitizeFrontMatter(fm map[string]interface{}) map[string]interface{} {
	if fm == nil {
		return nil
	}
	sanitized := make(map[string]interface{}, len(fm))
	for k, v := range fm {
		sanitized[k] = sanitizeFrontMatterValue(v)
	}
	return sanitized
}

// sanitizeFrontMatterValue flattens decoder-specific types: YAML interface
// maps and TOML/YAML dates, which become ISO 8601 strings.
func sanitizeFrontMatterValue(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		return sanitizeFrontMatter(v)
	case map[interface{}]interface{}:
		normalized := make(map[string]interface{}, len(v))
		for key, inner := range v {
			normalized[fmt.Sprint(key)] = sanitizeFrontMatterValue(inner)
		}
		return normalized
	case []interface{}:
		slice := make([]interface{}, len(v))
		for i := range v {
			slice[i] = sanitizeFrontMatterValue(v[i])
		}
		return slice
	case []string:
		slice := make([]interface{}, len(v))
		for i := range v {
			slice[i] = v[i]
		}
		return slice
	case time.Time:
		return formatISO(v)
	case toml.LocalDate:
		return v.String()
	case toml.LocalDateTime:
		return v.String()
	default:
		return v
	}
}

func formatISO(t time.Time) string {
	t = t.UTC()
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format(time.RFC3339)
}

func normalizeLineEndings(input string) string {
	return strings.ReplaceAll(input, "\r\n", "\n")
}
