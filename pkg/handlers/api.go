package handlers

import (
	"net/http"
	"slices"
	"strconv"
	"time"

	"devblog/pkg/metrics"
	"devblog/pkg/models"
	"devblog/pkg/services"

	"github.com/gin-gonic/gin"
)

// API serves the read-only query layer over HTTP. Each request reads from
// the Store current when it arrived.
type API struct {
	lib     *services.Library
	contact *services.ContactService
	appURL  string

	// contactResetAfter is how long /api/contact/status reports a submission.
	contactResetAfter time.Duration
}

func NewAPI(lib *services.Library, contact *services.ContactService, appURL string, contactResetAfter time.Duration) *API {
	return &API{lib: lib, contact: contact, appURL: appURL, contactResetAfter: contactResetAfter}
}

func (a *API) ListArticles(c *gin.Context) {
	metrics.QueryRequests.WithLabelValues("category").Inc()
	category := c.Query("category")
	if category == "" {
		category = services.AllCategories
	}
	articles := a.lib.Store().ListByCategory(category)
	if tag := c.Query("tag"); tag != "" {
		articles = slices.DeleteFunc(articles, func(art models.Article) bool {
			return !slices.Contains(art.Tags, tag)
		})
	}
	c.JSON(http.StatusOK, services.SummarizeAll(articles))
}

func (a *API) ListFeatured(c *gin.Context) {
	metrics.QueryRequests.WithLabelValues("featured").Inc()
	c.JSON(http.StatusOK, services.SummarizeAll(a.lib.Store().ListFeatured()))
}

func (a *API) ListRecent(c *gin.Context) {
	limit, ok := queryLimit(c, services.DefaultRecentLimit)
	if !ok {
		return
	}
	metrics.QueryRequests.WithLabelValues("recent").Inc()
	c.JSON(http.StatusOK, services.SummarizeAll(a.lib.Store().ListRecent(limit)))
}

func (a *API) GetArticle(c *gin.Context) {
	art, ok := lookup(a.lib.Store(), c.Param("slug"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}
	c.JSON(http.StatusOK, services.Detail(art))
}

func (a *API) ListRelated(c *gin.Context) {
	limit, ok := queryLimit(c, services.DefaultRelatedLimit)
	if !ok {
		return
	}
	store := a.lib.Store()
	art, ok := lookup(store, c.Param("slug"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}
	metrics.QueryRequests.WithLabelValues("related").Inc()
	c.JSON(http.StatusOK, services.SummarizeAll(store.ListRelated(art.Slug, art.Category, limit)))
}

func (a *API) GetArticleMeta(c *gin.Context) {
	art, ok := lookup(a.lib.Store(), c.Param("slug"))
	if !ok {
		c.JSON(http.StatusNotFound, services.NotFoundPageMeta())
		return
	}
	c.JSON(http.StatusOK, services.PageMetaFor(art, a.appURL))
}

func (a *API) ListTags(c *gin.Context) {
	metrics.QueryRequests.WithLabelValues("tags").Inc()
	c.JSON(http.StatusOK, a.lib.Store().ListAllTags())
}

func (a *API) ListArticlesByTag(c *gin.Context) {
	metrics.QueryRequests.WithLabelValues("tag").Inc()
	c.JSON(http.StatusOK, services.SummarizeAll(a.lib.Store().ListByTag(c.Param("tag"))))
}

func (a *API) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, a.lib.Store().Categories())
}

func (a *API) ListSlugs(c *gin.Context) {
	c.JSON(http.StatusOK, a.lib.Store().ListSlugs())
}

func (a *API) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "articles": a.lib.Store().Len()})
}

func lookup(store *services.Store, slug string) (models.Article, bool) {
	art, ok := store.FindBySlug(slug)
	if ok {
		metrics.ArticleLookups.WithLabelValues("found").Inc()
	} else {
		metrics.ArticleLookups.WithLabelValues("not_found").Inc()
	}
	return art, ok
}

// queryLimit reads ?limit=, falling back to def. A non-integer value is a
// 400; zero or negative values pass through and yield an empty list.
func queryLimit(c *gin.Context, def int) (int, bool) {
	raw, present := c.GetQuery("limit")
	if !present || raw == "" {
		return def, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
		return 0, false
	}
	return limit, true
}
