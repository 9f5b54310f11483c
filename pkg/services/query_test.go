package services

import (
	"sync"
	"testing"

	"devblog/pkg/models"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindBySlug(t *testing.T) {
	store := shippedStore(t)

	for _, art := range store.Articles() {
		got, ok := store.FindBySlug(art.Slug)
		require.True(t, ok, art.Slug)
		if diff := cmp.Diff(art, got); diff != "" {
			t.Errorf("FindBySlug(%q) mismatch (-want +got):\n%s", art.Slug, diff)
		}
	}

	_, ok := store.FindBySlug("__nonexistent__")
	assert.False(t, ok)

	_, ok = store.FindBySlug("Getting-Started-Nextjs-Blog")
	assert.False(t, ok, "lookup is case-sensitive")
}

func TestListFeatured(t *testing.T) {
	store := shippedStore(t)

	featured := store.ListFeatured()
	assert.Equal(t, []string{"getting-started-nextjs-blog", "typescript-best-practices"}, slugsOf(featured))
	for _, art := range featured {
		assert.True(t, art.Featured)
	}
	assert.Equal(t, "2024-01-15", featured[0].PublishedAt)
	assert.Equal(t, "2024-01-10", featured[1].PublishedAt)
}

func TestListRecent(t *testing.T) {
	store := shippedStore(t)
	before := store.ListSlugs()

	assert.Equal(t, []string{"getting-started-nextjs-blog", "typescript-best-practices"}, slugsOf(store.ListRecent(2)))
	assert.Equal(t, []string{
		"getting-started-nextjs-blog",
		"typescript-best-practices",
		"tailwind-css-design-system",
	}, slugsOf(store.ListRecent(DefaultRecentLimit)))
	assert.Empty(t, store.ListRecent(0))
	assert.Empty(t, store.ListRecent(-1))

	assert.Equal(t, before, store.ListSlugs(), "ListRecent must not reorder the store")
}

func TestListRecentKeepsStoreOrderForTies(t *testing.T) {
	store, err := NewStore([]models.Article{
		fixtureArticle("a", "Go", "2024-01-01", false),
		fixtureArticle("b", "Go", "2024-02-01", false),
		fixtureArticle("c", "Go", "2024-02-01", false),
		fixtureArticle("d", "Go", "2023-12-31", false),
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "c", "a", "d"}, slugsOf(store.ListRecent(10)))
	assert.Equal(t, []string{"b", "c"}, slugsOf(store.ListRecent(2)))
	assert.Equal(t, []string{"a", "b", "c", "d"}, store.ListSlugs())
}

func TestListByCategory(t *testing.T) {
	store := shippedStore(t)

	all := store.ListByCategory(AllCategories)
	assert.Len(t, all, 3)
	assert.Equal(t, store.ListSlugs(), slugsOf(all))

	assert.Equal(t, []string{"tailwind-css-design-system"}, slugsOf(store.ListByCategory("Design")))
	assert.Equal(t, []string{"typescript-best-practices"}, slugsOf(store.ListByCategory("TypeScript")))

	none := store.ListByCategory("design")
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestListRelated(t *testing.T) {
	store := shippedStore(t)
	assert.Empty(t, store.ListRelated("getting-started-nextjs-blog", "Web Development", DefaultRelatedLimit))

	fixtures, err := NewStore([]models.Article{
		fixtureArticle("one", "Go", "2024-01-01", false),
		fixtureArticle("two", "Go", "2024-01-02", false),
		fixtureArticle("other", "Rust", "2024-01-03", false),
		fixtureArticle("three", "Go", "2024-01-04", false),
		fixtureArticle("four", "Go", "2024-01-05", false),
		fixtureArticle("five", "Go", "2024-01-06", false),
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"one", "three", "four"}, slugsOf(fixtures.ListRelated("two", "Go", 3)))
	assert.Equal(t, []string{"one", "three", "four", "five"}, slugsOf(fixtures.ListRelated("two", "Go", 10)))
	assert.Empty(t, fixtures.ListRelated("other", "Rust", 3))
	assert.Empty(t, fixtures.ListRelated("two", "Go", 0))
}

func TestListByTag(t *testing.T) {
	store := shippedStore(t)

	assert.Equal(t, []string{"getting-started-nextjs-blog", "typescript-best-practices"}, slugsOf(store.ListByTag("React")))
	assert.Equal(t, []string{"getting-started-nextjs-blog", "tailwind-css-design-system"}, slugsOf(store.ListByTag("Tailwind CSS")))
	assert.Empty(t, store.ListByTag("react"))
}

func TestListAllTags(t *testing.T) {
	store := shippedStore(t)

	want := []string{
		"Best Practices",
		"Blog",
		"CSS",
		"Design System",
		"Development",
		"Frontend",
		"Next.js",
		"React",
		"Tailwind CSS",
		"Tutorial",
		"Type Safety",
		"TypeScript",
		"UI/UX",
	}
	if diff := cmp.Diff(want, store.ListAllTags()); diff != "" {
		t.Errorf("ListAllTags mismatch (-want +got):\n%s", diff)
	}
}

func TestQueriesAreSafeForConcurrentReaders(t *testing.T) {
	store := shippedStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				recent := store.ListRecent(2)
				recent[0].Title = "scribbled"
				store.ListByTag("React")
				store.ListAllTags()
				store.FindBySlug("typescript-best-practices")
			}
		}()
	}
	wg.Wait()

	art, ok := store.FindBySlug("getting-started-nextjs-blog")
	require.True(t, ok)
	assert.Equal(t, "Getting Started with Next.js Blog Development", art.Title)
}
