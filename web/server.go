package web

import (
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/solwave/fanwall/util"
	"golang.org/x/time/rate"
)

// NewRouter builds the full web surface: the HTML wall, the RSS feed and the
// JSON API the SSH client talks to. Mutating endpoints sit behind a per-IP
// rate limit; reads only behind gzip.
func NewRouter(conf *util.AppConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	tmpl := template.Must(template.New("index.html").Parse(indexTemplate))
	router.SetHTMLTemplate(tmpl)

	// 5 writes/second sustained with a small burst, per client IP
	writeLimiter := NewRateLimiter(rate.Limit(5), 10)

	router.GET("/", func(c *gin.Context) {
		HandleIndex(c, conf)
	})
	router.GET("/feed.rss", func(c *gin.Context) {
		HandleRssFeed(c, conf)
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": util.GetVersion()})
	})

	api := router.Group("/api")
	{
		api.GET("/posts", HandleApiPosts)
		api.GET("/posts/:id/comments", HandleApiComments)

		writes := api.Group("")
		writes.Use(RateLimitMiddleware(writeLimiter))
		{
			writes.POST("/posts", HandleApiCreatePost)
			writes.POST("/users", HandleApiEnsureUser)
			writes.POST("/posts/:id/comments", HandleApiCreateComment)
			writes.POST("/posts/:id/reactions", HandleApiToggleReaction)
		}
	}

	return router
}

// RunWebServer blocks serving the HTTP side.
func RunWebServer(conf *util.AppConfig) error {
	gin.SetMode(gin.ReleaseMode)
	router := NewRouter(conf)

	addr := fmt.Sprintf(":%d", conf.Conf.HttpPort)
	log.Printf("Starting HTTP server on %s", addr)
	return router.Run(addr)
}
