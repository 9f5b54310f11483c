package handlers

import (
	"devblog/pkg/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const sessionName = "devblog_session"

// RegisterRoutes mounts the API on r. Contact routes run behind a cookie
// session signed with sessionSecret and the given rate limiter.
func RegisterRoutes(r *gin.Engine, api *API, sessionSecret string, limiter middleware.Limiter) {
	r.GET("/healthz", api.Health)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/articles", api.ListArticles)
		apiGroup.GET("/articles/featured", api.ListFeatured)
		apiGroup.GET("/articles/recent", api.ListRecent)
		apiGroup.GET("/articles/:slug", api.GetArticle)
		apiGroup.GET("/articles/:slug/related", api.ListRelated)
		apiGroup.GET("/articles/:slug/meta", api.GetArticleMeta)
		apiGroup.GET("/tags", api.ListTags)
		apiGroup.GET("/tags/:tag/articles", api.ListArticlesByTag)
		apiGroup.GET("/categories", api.ListCategories)
		apiGroup.GET("/slugs", api.ListSlugs)
	}

	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{Path: "/", HttpOnly: true, MaxAge: 86400})
	contact := r.Group("/api/contact")
	contact.Use(sessions.Sessions(sessionName, store))
	{
		contact.POST("", limiter.Middleware("contact"), api.SubmitContact)
		contact.GET("/status", api.ContactStatus)
	}
}
