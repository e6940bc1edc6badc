package server

import (
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"teakwood/storefront/internal/config"
	"teakwood/storefront/internal/content"
	"teakwood/storefront/internal/domain"
	"teakwood/storefront/internal/view"

	"github.com/gin-gonic/gin"
)

// page is the data every template receives. Data carries the page body.
type page struct {
	Title   string
	Nav     string
	Search  string
	Columns int
	Menu    view.List[domain.Category]
	Contact config.ContactConfig
	ChatURL string
	Year    int
	Data    any
}

// menuKey holds categories a handler already loaded, so the header does
// not fetch them again.
const menuKey = "menu"

func (s *Server) render(c *gin.Context, status int, name, title, nav string, data any) {
	c.HTML(status, name, page{
		Title:   title,
		Nav:     nav,
		Search:  c.Query("search"),
		Columns: c.GetInt(columnsKey),
		Menu:    s.menu(c),
		Contact: s.contact,
		ChatURL: s.svc.Links().ChatURL(),
		Year:    s.svc.Now().Year(),
		Data:    data,
	})
}

// menu is the header category menu. A failed load renders as empty.
func (s *Server) menu(c *gin.Context) view.List[domain.Category] {
	if v, ok := c.Get(menuKey); ok {
		if list, ok := v.(view.List[domain.Category]); ok {
			return list
		}
	}
	return s.svc.Categories(c.Request.Context())
}

type gridData struct {
	Columns int
	Items   []domain.Product
}

type messageData struct {
	Message string
}

func (s *Server) renderMessage(c *gin.Context, status int, title, message string) {
	s.render(c, status, "message.html", title, "", messageData{Message: message})
}

func (s *Server) funcs() template.FuncMap {
	return template.FuncMap{
		"image":        s.assets.Image,
		"productImage": s.assets.ProductImage,
		"sanitize":     s.rich.Sanitize,
		"excerpt":      s.rich.Excerpt,
		"stars":        view.Stars,
		"ratingStars": func(n domain.Number) []bool {
			return view.Stars(view.RoundRating(n.Float()))
		},
		"initials":    content.Initials,
		"avatarStyle": avatarStyle,
		"buyURL": func(p domain.Product) string {
			return s.svc.Links().TileBuyURL(&p)
		},
		"productPath": func(p domain.Product) string {
			return "/product/" + url.PathEscape(p.Key())
		},
		"faqURL": faqURL,
		"grid": func(columns int, items []domain.Product) gridData {
			return gridData{Columns: columns, Items: items}
		},
		"date": func(raw string) string {
			t, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				return raw
			}
			return t.Format("Jan 2, 2006")
		},
	}
}

func avatarStyle(name string) template.CSS {
	from, to := content.AvatarHues(name)
	return template.CSS(fmt.Sprintf("background: linear-gradient(135deg, hsl(%d, 70%%, 55%%), hsl(%d, 70%%, 45%%))", from, to))
}

func faqURL(search, open string) string {
	q := url.Values{}
	if search != "" {
		q.Set("q", search)
	}
	if open != "" {
		q.Set("open", open)
	}
	if len(q) == 0 {
		return "/faq"
	}
	return "/faq?" + q.Encode()
}

// currentURL is the absolute URL of the page the visitor is looking at.
func currentURL(c *gin.Context, path string) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return fmt.Sprintf("%s://%s%s", scheme, c.Request.Host, path)
}

// gone reports whether the visitor went away mid-request, in which case
// nothing is rendered.
func gone(c *gin.Context) bool {
	if c.Request.Context().Err() != nil {
		c.AbortWithStatus(499)
		return true
	}
	return false
}

func (s *Server) notFound(c *gin.Context) {
	s.renderMessage(c, http.StatusNotFound, "Not found", "Page not found")
}
