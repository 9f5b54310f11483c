package models

// PageMeta is the document metadata for an article page.
type PageMeta struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Keywords    []string   `json:"keywords,omitempty"`
	Authors     []Author   `json:"authors,omitempty"`
	OpenGraph   *OpenGraph `json:"openGraph,omitempty"`
	Twitter     *Twitter   `json:"twitter,omitempty"`
}

type Author struct {
	Name string `json:"name"`
}

type OpenGraph struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Type          string   `json:"type"`
	URL           string   `json:"url"`
	PublishedTime string   `json:"publishedTime"`
	ModifiedTime  string   `json:"modifiedTime"`
	Authors       []string `json:"authors"`
	Tags          []string `json:"tags"`
	Images        []string `json:"images,omitempty"`
}

type Twitter struct {
	Card        string `json:"card"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
