package services

import (
	"math"
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"devblog/pkg/models"
)

const (
	InvalidDate          = "Invalid Date"
	DefaultExcerptLength = 160
	WordsPerMinute       = 200

	ellipsis = "..."
)

// space is ASCII whitespace plus \v, Unicode separators (NBSP included) and the BOM.
const space = `\s\v\p{Z}\x{FEFF}`

var (
	slugStripRe     = regexp.MustCompile(`[^\w` + space + `-]`)
	slugSeparatorRe = regexp.MustCompile(`[` + space + `_-]+`)
	slugEdgeRe      = regexp.MustCompile(`^-+|-+$`)
	partialWordRe   = regexp.MustCompile(`[` + space + `]+[^` + space + `]*$`)
	markupTagRe     = regexp.MustCompile(`<[^>]*?>`)
	emailRe         = regexp.MustCompile(`^[^` + space + `@]+@[^` + space + `@]+\.[^` + space + `@]+$`)
)

// Accepted ISO 8601 shapes.
var isoLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseISODate parses a date or date-time string. Date-only values are UTC midnight.
func ParseISODate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// FormatDate renders an ISO date as "January 2, 2006" in UTC.
func FormatDate(iso string) string {
	t, ok := ParseISODate(iso)
	if !ok {
		return InvalidDate
	}
	return t.Format("January 2, 2006")
}

func Slugify(text string) string {
	s := strings.ToLower(text)
	s = slugStripRe.ReplaceAllString(s, "")
	s = slugSeparatorRe.ReplaceAllString(s, "-")
	return slugEdgeRe.ReplaceAllString(s, "")
}

// TruncateText shortens text to at most maxLength runes, ellipsis included,
// backing off to the last whole word. Text that already fits is returned as is.
func TruncateText(text string, maxLength int) string {
	if utf8.RuneCountInString(text) <= maxLength {
		return text
	}
	if maxLength <= 0 {
		return ""
	}
	runes := []rune(text)
	budget := maxLength - utf8.RuneCountInString(ellipsis)
	if budget <= 0 {
		return string(runes[:maxLength])
	}

	cut := string(runes[:budget])
	if !unicode.IsSpace(runes[budget]) {
		cut = partialWordRe.ReplaceAllString(cut, "")
	}
	return strings.TrimRightFunc(cut, unicode.IsSpace) + ellipsis
}

// StripMarkup removes every <...> tag from content.
func StripMarkup(content string) string {
	return markupTagRe.ReplaceAllString(content, "")
}

func GenerateExcerpt(content string, maxLength int) string {
	return TruncateText(strings.TrimSpace(StripMarkup(content)), maxLength)
}

// CalculateReadTime returns whole minutes at WordsPerMinute, rounded up.
func CalculateReadTime(content string) int {
	words := len(strings.Fields(content))
	return int(math.Ceil(float64(words) / WordsPerMinute))
}

// IsValidEmail is a syntactic sanity check, not RFC 5322 validation.
func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

func CapitalizeFirst(text string) string {
	r, size := utf8.DecodeRuneInString(text)
	if size == 0 {
		return text
	}
	return string(unicode.ToUpper(r)) + text[size:]
}

// UniqueStrings drops repeats, keeping first occurrences in order.
func UniqueStrings(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

type SortOrder string

const (
	SortDesc SortOrder = "desc"
	SortAsc  SortOrder = "asc"
)

// SortByDate returns a copy of articles stably sorted by PublishedAt.
// Unparseable dates sort as the zero time.
func SortByDate(articles []models.Article, order SortOrder) []models.Article {
	sorted := slices.Clone(articles)
	slices.SortStableFunc(sorted, func(a, b models.Article) int {
		ta, _ := ParseISODate(a.PublishedAt)
		tb, _ := ParseISODate(b.PublishedAt)
		if order == SortAsc {
			return ta.Compare(tb)
		}
		return tb.Compare(ta)
	})
	return sorted
}
