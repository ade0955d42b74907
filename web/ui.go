package web

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/solwave/fanwall/domain"
	"github.com/solwave/fanwall/store"
	"github.com/solwave/fanwall/util"
)

type IndexPageData struct {
	Title       string
	Host        string
	SSHPort     int
	Version     string
	Description string
	Posts       []PostView
	HasPrev     bool
	HasNext     bool
	PrevPage    int
	NextPage    int
}

type PostView struct {
	PostId    string
	Author    string
	Content   string
	Link      string
	Reactions []ReactionView
	Comments  int
	TimeAgo   string
}

type ReactionView struct {
	Glyph string
	Count int
}

func formatTimeAgo(t time.Time) string {
	duration := time.Since(t)

	if duration < time.Minute {
		return "just now"
	} else if duration < time.Hour {
		mins := int(duration.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	} else if duration < 24*time.Hour {
		hours := int(duration.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	} else if duration < 30*24*time.Hour {
		days := int(duration.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	} else {
		return t.Format("Jan 2, 2006")
	}
}

func HandleIndex(c *gin.Context, conf *util.AppConfig) {
	page := 1
	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}

	postsPerPage := 20
	offset := (page - 1) * postsPerPage

	err, posts := store.Get().FetchPosts()
	if err != nil {
		log.Printf("Failed to read posts: %v", err)
		c.HTML(http.StatusInternalServerError, "index.html", IndexPageData{Title: "Error"})
		return
	}
	if posts == nil {
		posts = &[]domain.Post{}
	}

	total := len(*posts)
	start := offset
	end := offset + postsPerPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	views := make([]PostView, 0, end-start)
	for _, p := range (*posts)[start:end] {
		reactions := make([]ReactionView, 0, len(domain.AllEmojis))
		for _, e := range domain.AllEmojis {
			if n := p.ReactionCount(e); n > 0 {
				reactions = append(reactions, ReactionView{Glyph: e.Glyph(), Count: n})
			}
		}
		views = append(views, PostView{
			PostId:    p.Id.String(),
			Author:    util.ShortWallet(p.AuthorWallet),
			Content:   p.Content,
			Link:      firstEmbed(p),
			Reactions: reactions,
			TimeAgo:   formatTimeAgo(p.CreatedAt),
		})
	}

	data := IndexPageData{
		Title:    util.Name,
		Version:  util.GetVersion(),
		Posts:    views,
		HasPrev:  page > 1,
		HasNext:  end < total,
		PrevPage: page - 1,
		NextPage: page + 1,
	}
	if conf != nil {
		data.Host = conf.Conf.Host
		data.SSHPort = conf.Conf.SshPort
		data.Description = conf.Conf.NodeDescription
	}

	c.HTML(http.StatusOK, "index.html", data)
}

func firstEmbed(p domain.Post) string {
	for _, link := range []string{p.TwitterEmbed, p.Website, p.Facebook, p.Telegram} {
		if link != "" && util.IsURL(link) {
			return link
		}
	}
	return ""
}

const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{ .Title }}</title>
<link rel="alternate" type="application/rss+xml" title="{{ .Title }}" href="/feed.rss">
<style>
body { font-family: monospace; max-width: 42rem; margin: 2rem auto; padding: 0 1rem; background: #101014; color: #e8e8e8; }
a { color: #9b6dff; }
.post { border-bottom: 1px solid #2a2a32; padding: 1rem 0; }
.meta { color: #8a8a93; font-size: 0.85rem; }
.reactions { color: #6db9ff; margin-top: 0.3rem; }
footer { margin-top: 2rem; color: #8a8a93; font-size: 0.85rem; }
</style>
</head>
<body>
<h1>{{ .Title }}</h1>
{{ if .Description }}<p class="meta">{{ .Description }}</p>{{ end }}
{{ if .Host }}<p class="meta">react, comment and tip over ssh: <code>ssh -p {{ .SSHPort }} {{ .Host }}</code></p>{{ end }}
{{ range .Posts }}
<div class="post">
<div class="meta">{{ .Author }} &middot; {{ .TimeAgo }}</div>
<p>{{ .Content }}</p>
{{ if .Link }}<div class="meta"><a href="{{ .Link }}" rel="nofollow noopener">{{ .Link }}</a></div>{{ end }}
{{ if .Reactions }}<div class="reactions">{{ range .Reactions }}{{ .Glyph }} {{ .Count }}&nbsp;&nbsp;{{ end }}</div>{{ end }}
</div>
{{ else }}
<p>No posts yet.</p>
{{ end }}
<footer>
{{ if .HasPrev }}<a href="/?page={{ .PrevPage }}">&laquo; newer</a>{{ end }}
{{ if .HasNext }}<a href="/?page={{ .NextPage }}">older &raquo;</a>{{ end }}
<div>{{ .Title }} v{{ .Version }} &middot; <a href="/feed.rss">rss</a></div>
</footer>
</body>
</html>`
