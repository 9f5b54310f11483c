package services

import (
	"slices"

	"devblog/pkg/models"
)

const (
	DefaultRecentLimit  = 6
	DefaultRelatedLimit = 3
)

// FindBySlug looks up an article by exact, case-sensitive slug.
func (s *Store) FindBySlug(slug string) (models.Article, bool) {
	i, ok := s.bySlug[slug]
	if !ok {
		return models.Article{}, false
	}
	return cloneArticle(s.articles[i]), true
}

func (s *Store) ListFeatured() []models.Article {
	return s.filter(func(a *models.Article) bool { return a.Featured })
}

// ListRecent returns up to limit articles, newest first. Equal dates keep
// store order. The store itself is never reordered.
func (s *Store) ListRecent(limit int) []models.Article {
	return truncate(SortByDate(s.Articles(), SortDesc), limit)
}

// ListByCategory filters on an exact category; AllCategories returns everything.
func (s *Store) ListByCategory(category string) []models.Article {
	if category == AllCategories {
		return s.Articles()
	}
	return s.filter(func(a *models.Article) bool { return a.Category == category })
}

// ListRelated returns articles in category other than slug, in store order.
// It returns fewer than limit when not enough qualify.
func (s *Store) ListRelated(slug, category string, limit int) []models.Article {
	related := s.filter(func(a *models.Article) bool {
		return a.Category == category && a.Slug != slug
	})
	return truncate(related, limit)
}

func (s *Store) ListByTag(tag string) []models.Article {
	return s.filter(func(a *models.Article) bool { return slices.Contains(a.Tags, tag) })
}

// ListAllTags is the sorted, deduplicated union of every article's tags.
func (s *Store) ListAllTags() []string {
	var tags []string
	for i := range s.articles {
		tags = append(tags, s.articles[i].Tags...)
	}
	tags = UniqueStrings(tags)
	slices.Sort(tags)
	return tags
}

// ListSlugs returns every slug in store order.
func (s *Store) ListSlugs() []string {
	slugs := make([]string, len(s.articles))
	for i := range s.articles {
		slugs[i] = s.articles[i].Slug
	}
	return slugs
}

func (s *Store) filter(keep func(*models.Article) bool) []models.Article {
	out := []models.Article{}
	for i := range s.articles {
		if keep(&s.articles[i]) {
			out = append(out, cloneArticle(s.articles[i]))
		}
	}
	return out
}

// truncate keeps the first limit items; a non-positive limit yields none.
func truncate(articles []models.Article, limit int) []models.Article {
	if limit <= 0 {
		return []models.Article{}
	}
	if len(articles) > limit {
		return articles[:limit:limit]
	}
	return articles
}
