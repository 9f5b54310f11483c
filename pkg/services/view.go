package services

import (
	"strings"

	"devblog/pkg/models"
)

const NotFoundTitle = "Post Not Found"

func Summarize(art models.Article) models.ArticleSummary {
	tags := art.Tags
	if tags == nil {
		tags = []string{}
	}
	return models.ArticleSummary{
		ID:            art.ID,
		Slug:          art.Slug,
		Title:         art.Title,
		Excerpt:       art.Excerpt,
		Category:      art.Category,
		Tags:          tags,
		PublishedAt:   art.PublishedAt,
		FormattedDate: FormatDate(art.PublishedAt),
		ReadTime:      art.ReadTime,
		Featured:      art.Featured,
		Author:        art.Author,
		Image:         art.Image,
	}
}

func SummarizeAll(articles []models.Article) []models.ArticleSummary {
	out := make([]models.ArticleSummary, len(articles))
	for i := range articles {
		out[i] = Summarize(articles[i])
	}
	return out
}

func Detail(art models.Article) models.ArticleDetail {
	return models.ArticleDetail{
		Article:              art,
		FormattedDate:        FormatDate(art.PublishedAt),
		FormattedUpdatedDate: FormatDate(art.UpdatedAt),
	}
}

// PageMetaFor builds the metadata for an article page served under baseURL.
func PageMetaFor(art models.Article, baseURL string) models.PageMeta {
	og := &models.OpenGraph{
		Title:         art.Title,
		Description:   art.MetaDescription,
		Type:          "article",
		URL:           strings.TrimRight(baseURL, "/") + "/blog/" + art.Slug,
		PublishedTime: art.PublishedAt,
		ModifiedTime:  art.UpdatedAt,
		Authors:       []string{art.Author},
		Tags:          art.Tags,
	}
	if art.Image != "" {
		og.Images = []string{art.Image}
	}
	return models.PageMeta{
		Title:       art.Title,
		Description: art.MetaDescription,
		Keywords:    art.Keywords,
		Authors:     []models.Author{{Name: art.Author}},
		OpenGraph:   og,
		Twitter: &models.Twitter{
			Card:        "summary_large_image",
			Title:       art.Title,
			Description: art.MetaDescription,
		},
	}
}

func NotFoundPageMeta() models.PageMeta {
	return models.PageMeta{Title: NotFoundTitle}
}
