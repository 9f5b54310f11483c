package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ArticleLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "devblog", Name: "article_lookups_total", Help: "Article lookups by slug, by result."},
		[]string{"result"},
	)
	QueryRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "devblog", Name: "query_requests_total", Help: "Query layer calls served over HTTP, by view."},
		[]string{"view"},
	)
	ContactSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "devblog", Name: "contact_submissions_total", Help: "Contact form submissions, by result."},
		[]string{"result"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "devblog", Name: "rate_limit_rejected_total", Help: "Requests rejected by the rate limiter, by route."},
		[]string{"route"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(ArticleLookups)
	reg.MustRegister(QueryRequests)
	reg.MustRegister(ContactSubmissions)
	reg.MustRegister(RateLimitRejected)
}
