package models

// Article is a single blog post in the content store.
type Article struct {
	ID              string   `json:"id" yaml:"id" toml:"id" validate:"required"`
	Slug            string   `json:"slug" yaml:"slug" toml:"slug" validate:"required,slug"`
	Title           string   `json:"title" yaml:"title" toml:"title" validate:"required"`
	Excerpt         string   `json:"excerpt" yaml:"excerpt" toml:"excerpt"`
	Content         string   `json:"content,omitempty" yaml:"-" toml:"-" validate:"required"`
	Category        string   `json:"category" yaml:"category" toml:"category" validate:"required"`
	Tags            []string `json:"tags" yaml:"tags" toml:"tags"`
	PublishedAt     string   `json:"publishedAt" yaml:"publishedAt" toml:"publishedAt" validate:"required,isodate"`
	UpdatedAt       string   `json:"updatedAt" yaml:"updatedAt" toml:"updatedAt" validate:"required,isodate"`
	ReadTime        int      `json:"readTime" yaml:"readTime" toml:"readTime" validate:"gt=0"`
	Featured        bool     `json:"featured" yaml:"featured" toml:"featured"`
	Author          string   `json:"author" yaml:"author" toml:"author" validate:"required"`
	MetaDescription string   `json:"metaDescription" yaml:"metaDescription" toml:"metaDescription"`
	Keywords        []string `json:"keywords" yaml:"keywords" toml:"keywords"`
	Image           string   `json:"image,omitempty" yaml:"image,omitempty" toml:"image,omitempty"`

	// Order positions the article when loading from files; it is not served.
	Order int `json:"-" yaml:"order" toml:"order"`
}

// ArticleSummary is the list view of an article.
type ArticleSummary struct {
	ID            string   `json:"id"`
	Slug          string   `json:"slug"`
	Title         string   `json:"title"`
	Excerpt       string   `json:"excerpt"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	PublishedAt   string   `json:"publishedAt"`
	FormattedDate string   `json:"formattedDate"`
	ReadTime      int      `json:"readTime"`
	Featured      bool     `json:"featured"`
	Author        string   `json:"author"`
	Image         string   `json:"image,omitempty"`
}

// ArticleDetail is the full article as served on its own page.
type ArticleDetail struct {
	Article
	FormattedDate        string `json:"formattedDate"`
	FormattedUpdatedDate string `json:"formattedUpdatedDate"`
}
