package web

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/feeds"
	"github.com/solwave/fanwall/domain"
	"github.com/solwave/fanwall/store"
	"github.com/solwave/fanwall/util"
)

// HandleRssFeed serves the wall as RSS, newest first, capped at 50 items.
func HandleRssFeed(c *gin.Context, conf *util.AppConfig) {
	err, posts := store.Get().FetchPosts()
	if err != nil {
		log.Printf("Failed to read posts for feed: %v", err)
		c.String(http.StatusInternalServerError, "feed unavailable")
		return
	}
	if posts == nil {
		posts = &[]domain.Post{}
	}

	host := "localhost"
	description := "wallet-keyed fan page"
	if conf != nil {
		if conf.Conf.Host != "" {
			host = conf.Conf.Host
		}
		if conf.Conf.NodeDescription != "" {
			description = conf.Conf.NodeDescription
		}
	}
	baseURL := "http://" + host

	feed := &feeds.Feed{
		Title:       util.Name,
		Link:        &feeds.Link{Href: baseURL},
		Description: description,
		Created:     time.Now(),
	}

	list := *posts
	if len(list) > 50 {
		list = list[:50]
	}
	for _, p := range list {
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          p.Id.String(),
			Title:       fmt.Sprintf("%s: %s", util.ShortWallet(p.AuthorWallet), util.Truncate(p.Content, 60)),
			Link:        &feeds.Link{Href: baseURL + "/?post=" + p.Id.String()},
			Description: p.Content,
			Author:      &feeds.Author{Name: util.ShortWallet(p.AuthorWallet)},
			Created:     p.CreatedAt,
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		log.Printf("Failed to render feed: %v", err)
		c.String(http.StatusInternalServerError, "feed unavailable")
		return
	}
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}
