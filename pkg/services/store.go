package services

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"slices"
	"sort"
	"strings"

	"devblog/pkg/models"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// AllCategories is the synthetic category that disables filtering.
const AllCategories = "All"

const siteConfigFile = "site.yml"

var (
	ErrInvalidArticle   = errors.New("invalid article")
	ErrDuplicateArticle = errors.New("duplicate article")
	ErrUnknownCategory  = errors.New("unknown category")
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, ok := ParseISODate(fl.Field().String())
		return ok
	})
	return v
}

// Store is the immutable, ordered set of articles. It is safe for
// concurrent readers; nothing mutates it after NewStore returns.
type Store struct {
	articles   []models.Article
	categories []string
	bySlug     map[string]int
}

// NewStore validates articles and freezes them in the given order.
// categories is the enumeration offered to readers; "All" is always first.
func NewStore(articles []models.Article, categories []string) (*Store, error) {
	s := &Store{
		articles: make([]models.Article, 0, len(articles)),
		bySlug:   make(map[string]int, len(articles)),
	}

	s.categories = []string{AllCategories}
	for _, c := range categories {
		if c != AllCategories && !slices.Contains(s.categories, c) {
			s.categories = append(s.categories, c)
		}
	}

	ids := make(map[string]struct{}, len(articles))
	for i := range articles {
		art := cloneArticle(articles[i])
		if err := validateArticle(art); err != nil {
			return nil, err
		}
		if len(categories) > 0 && !slices.Contains(s.categories[1:], art.Category) {
			return nil, fmt.Errorf("article %q: %w %q", art.Slug, ErrUnknownCategory, art.Category)
		}
		if _, ok := ids[art.ID]; ok {
			return nil, fmt.Errorf("%w: id %q", ErrDuplicateArticle, art.ID)
		}
		if _, ok := s.bySlug[art.Slug]; ok {
			return nil, fmt.Errorf("%w: slug %q", ErrDuplicateArticle, art.Slug)
		}
		ids[art.ID] = struct{}{}
		s.bySlug[art.Slug] = len(s.articles)
		s.articles = append(s.articles, art)
	}

	// Without an explicit enumeration, categories follow first appearance.
	if len(categories) == 0 {
		for _, art := range s.articles {
			if !slices.Contains(s.categories, art.Category) {
				s.categories = append(s.categories, art.Category)
			}
		}
	}
	return s, nil
}

func validateArticle(art models.Article) error {
	if err := validate.Struct(art); err != nil {
		return fmt.Errorf("article %q: %w: %v", art.Slug, ErrInvalidArticle, err)
	}
	published, _ := ParseISODate(art.PublishedAt)
	updated, _ := ParseISODate(art.UpdatedAt)
	if updated.Before(published) {
		return fmt.Errorf("article %q: %w: updatedAt %s before publishedAt %s",
			art.Slug, ErrInvalidArticle, art.UpdatedAt, art.PublishedAt)
	}
	return nil
}

// LoadStore reads every *.md file under root as an article. Files are
// ordered by their "order" front matter, then by path.
func LoadStore(fsys fs.FS, root string) (*Store, error) {
	type entry struct {
		path string
		art  models.Article
	}
	var entries []entry

	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		art, err := DecodeArticle(content)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		deriveArticleFields(&art, strings.TrimSuffix(d.Name(), ".md"))
		entries = append(entries, entry{path: p, art: art})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].art.Order != entries[j].art.Order {
			return entries[i].art.Order < entries[j].art.Order
		}
		return entries[i].path < entries[j].path
	})

	articles := make([]models.Article, len(entries))
	for i, e := range entries {
		articles[i] = e.art
	}

	site, err := LoadSiteConfig(fsys, root)
	if err != nil {
		return nil, err
	}
	return NewStore(articles, site.Categories)
}

// SiteCategories is the site's category enumeration without "All". It is
// empty when site.yml leaves categories open.
func SiteCategories(site models.SiteConfig) []string {
	var out []string
	for _, c := range site.Categories {
		if c != AllCategories && !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}

// deriveArticleFields fills in what an author may leave out of front matter.
func deriveArticleFields(art *models.Article, fileName string) {
	if art.Slug == "" {
		if art.Title != "" {
			art.Slug = Slugify(art.Title)
		} else {
			art.Slug = Slugify(fileName)
		}
	}
	if art.ID == "" {
		art.ID = art.Slug
	}
	if art.Excerpt == "" {
		art.Excerpt = GenerateExcerpt(art.Content, DefaultExcerptLength)
	}
	if art.ReadTime == 0 {
		art.ReadTime = CalculateReadTime(StripMarkup(art.Content))
	}
	if art.UpdatedAt == "" {
		art.UpdatedAt = art.PublishedAt
	}
	if art.MetaDescription == "" {
		art.MetaDescription = art.Excerpt
	}
}

// LoadSiteConfig reads site.yml under root. A missing file is an empty config.
func LoadSiteConfig(fsys fs.FS, root string) (models.SiteConfig, error) {
	var cfg models.SiteConfig
	content, err := fs.ReadFile(fsys, path.Join(root, siteConfigFile))
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", siteConfigFile, err)
	}
	return cfg, nil
}

// Articles returns a copy of every article in store order.
func (s *Store) Articles() []models.Article {
	return cloneArticles(s.articles)
}

func (s *Store) Categories() []string {
	return slices.Clone(s.categories)
}

func (s *Store) Len() int {
	return len(s.articles)
}

func cloneArticle(a models.Article) models.Article {
	a.Tags = slices.Clone(a.Tags)
	a.Keywords = slices.Clone(a.Keywords)
	return a
}

func cloneArticles(in []models.Article) []models.Article {
	out := make([]models.Article, len(in))
	for i := range in {
		out[i] = cloneArticle(in[i])
	}
	return out
}
