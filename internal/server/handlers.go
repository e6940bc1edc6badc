package server

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"teakwood/storefront/internal/content"
	"teakwood/storefront/internal/domain"
	"teakwood/storefront/internal/service"
	"teakwood/storefront/internal/view"

	"github.com/gin-gonic/gin"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type homeData struct {
	service.HomePage
	Filters []service.FeaturedFilter
}

func (s *Server) home(c *gin.Context) {
	home := s.svc.Home(c.Request.Context(), service.FeaturedQuery{
		Filter: service.ParseFeaturedFilter(c.Query("filter")),
		More:   c.Query("more") == "1",
	})
	if gone(c) {
		return
	}
	c.Set(menuKey, home.Categories)

	s.render(c, http.StatusOK, "home.html", "Teakwood Factory", "home", homeData{
		HomePage: home,
		Filters:  service.FeaturedFilters,
	})
}

func (s *Server) categories(c *gin.Context) {
	list := s.svc.Categories(c.Request.Context())
	if gone(c) {
		return
	}
	c.Set(menuKey, list)
	s.render(c, http.StatusOK, "categories.html", "Categories", "categories", list)
}

type productsData struct {
	Products view.List[domain.Product]
	Search   string
	Category string
}

func (s *Server) products(c *gin.Context) {
	query := service.ProductQuery{
		Search:   strings.TrimSpace(c.Query("search")),
		Category: strings.TrimSpace(c.Query("category")),
	}
	list := s.svc.Products(c.Request.Context(), query)
	if gone(c) {
		return
	}
	s.render(c, http.StatusOK, "products.html", "Products", "products", productsData{
		Products: list,
		Search:   query.Search,
		Category: query.Category,
	})
}

// search is the header search box. Blank queries are ignored.
func (s *Server) search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	c.Redirect(http.StatusSeeOther, "/products?search="+url.QueryEscape(q))
}

var productTabs = []string{"overview", "specs", "features", "reviews"}

// productState is the view state of the product page carried in its URL.
type productState struct {
	Tab   string
	Image int
	Qty   int
}

func readProductState(values url.Values) productState {
	st := productState{Tab: productTabs[0], Qty: 1}
	for _, tab := range productTabs {
		if values.Get("tab") == tab {
			st.Tab = tab
		}
	}
	if i, err := strconv.Atoi(values.Get("image")); err == nil && i > 0 {
		st.Image = i
	}
	if q, err := strconv.Atoi(values.Get("qty")); err == nil && q > 1 {
		st.Qty = q
	}
	return st
}

func (st productState) query() string {
	q := url.Values{}
	if st.Tab != productTabs[0] {
		q.Set("tab", st.Tab)
	}
	if st.Image > 0 {
		q.Set("image", strconv.Itoa(st.Image))
	}
	if st.Qty > 1 {
		q.Set("qty", strconv.Itoa(st.Qty))
	}
	return q.Encode()
}

type productData struct {
	Product  *domain.Product
	Path     string
	Images   []string
	Image    int
	Tab      string
	Tabs     []string
	Qty      int
	Delivery view.DeliveryEstimate
	Stars    []bool

	ShareURL   string
	BuyURL     string
	MessageURL string
	CopyURL    string

	Notices service.Notices
	Review  domain.ReviewSubmission
	Ratings []int
}

func (s *Server) product(c *gin.Context) {
	id := c.Param("id")
	detail := s.svc.Product(c.Request.Context(), id)
	s.renderProduct(c, http.StatusOK, detail, readProductState(c.Request.URL.Query()), domain.ReviewSubmission{})
}

func (s *Server) renderProduct(c *gin.Context, status int, detail view.Detail[domain.Product], st productState, review domain.ReviewSubmission) {
	if detail.Discarded || gone(c) {
		return
	}
	if !detail.Found() {
		if detail.NotFound(domain.ErrNotFound) {
			s.renderMessage(c, http.StatusNotFound, "Product not found", "Product not found")
			return
		}
		s.renderMessage(c, http.StatusBadGateway, "Product unavailable", "We couldn't load this product right now. Please try again.")
		return
	}

	p := detail.Item
	path := "/product/" + url.PathEscape(c.Param("id"))
	current := currentURL(c, path)
	links := s.svc.Links()

	images := p.Images()
	if st.Image >= len(images) {
		st.Image = 0
	}

	s.render(c, status, "product.html", p.Name, "products", productData{
		Product:    p,
		Path:       path,
		Images:     images,
		Image:      st.Image,
		Tab:        st.Tab,
		Tabs:       productTabs,
		Qty:        st.Qty,
		Delivery:   view.EstimateDelivery(p, s.svc.Now()),
		Stars:      view.Stars(view.RoundRating(p.AverageRating.Float())),
		ShareURL:   links.ShareURL(p, current),
		BuyURL:     links.BuyNowURL(p, st.Qty, "", current),
		MessageURL: links.MessageURL(p, current),
		CopyURL:    links.ProductURL(p, current),
		Notices:    s.svc.Notices(c.Request.Context(), sessionID(c), c.Param("id")),
		Review:     review,
		Ratings:    []int{1, 2, 3, 4, 5},
	})
}

func (s *Server) submitReview(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	rating, _ := strconv.Atoi(c.PostForm("rating"))
	review := domain.ReviewSubmission{Rating: rating, Comment: c.PostForm("comment")}
	st := readProductState(c.Request.PostForm)
	st.Tab = "reviews"

	detail, err := s.svc.SubmitReview(ctx, sessionID(c), id, review)
	switch {
	case err == nil:
		s.renderProduct(c, http.StatusOK, detail, st, domain.ReviewSubmission{})
	case errors.Is(err, domain.ErrValidation):
		s.renderProduct(c, http.StatusUnprocessableEntity, s.svc.Product(ctx, id), st, review)
	default:
		s.renderProduct(c, http.StatusBadGateway, s.svc.Product(ctx, id), st, review)
	}
}

// copyLink is the no-script path of the copy button. The link lands in the
// session clipboard and the product page picks it up after the redirect.
func (s *Server) copyLink(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	detail := s.svc.Product(ctx, id)
	if !detail.Found() {
		s.renderProduct(c, http.StatusOK, detail, productState{}, domain.ReviewSubmission{})
		return
	}

	if err := c.Request.ParseForm(); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	path := "/product/" + url.PathEscape(id)
	// the copy result is surfaced through the session notice
	_, _ = s.svc.CopyLink(ctx, sessionID(c), id, detail.Item, currentURL(c, path))

	target := path
	if state := readProductState(c.Request.PostForm).query(); state != "" {
		target += "?" + state
	}
	c.Redirect(http.StatusSeeOther, target)
}

type faqData struct {
	service.FAQView
	ExpandAll bool
}

func (s *Server) faq(c *gin.Context) {
	expandAll := c.Query("expand") == "all"
	faq := s.svc.FAQ(service.FAQQuery{
		Search:    c.Query("q"),
		Open:      c.Query("open"),
		ExpandAll: expandAll,
	})
	s.render(c, http.StatusOK, "faq.html", "FAQ", "faq", faqData{FAQView: faq, ExpandAll: expandAll})
}

type faqResponse struct {
	Query   string             `json:"query"`
	Results []content.FAQEntry `json:"results"`
	Message string             `json:"message,omitempty"`
}

func (s *Server) faqJSON(c *gin.Context) {
	faq := s.svc.FAQ(service.FAQQuery{Search: c.Query("q")})

	resp := faqResponse{
		Query:   faq.Search,
		Results: make([]content.FAQEntry, 0, len(faq.Items)),
		Message: faq.NoMatch,
	}
	for _, item := range faq.Items {
		resp.Results = append(resp.Results, content.FAQEntry{Question: item.Question, Answer: item.Answer})
	}
	c.JSON(http.StatusOK, resp)
}

type contactData struct {
	Lead    domain.Lead
	Sent    bool
	Message string
	Error   string
}

func (s *Server) contactForm(c *gin.Context) {
	data := contactData{}
	if c.Query("sent") == "1" {
		data.Sent = true
		data.Message = service.LeadSuccessMessage
	}
	s.render(c, http.StatusOK, "contact.html", "Contact us", "contact", data)
}

func (s *Server) submitContact(c *gin.Context) {
	lead := domain.Lead{
		Name:    c.PostForm("name"),
		Phone:   c.PostForm("phone"),
		Message: c.PostForm("message"),
	}

	err := s.svc.SubmitLead(c.Request.Context(), lead)
	if err == nil {
		c.Redirect(http.StatusSeeOther, "/contact?sent=1")
		return
	}

	status := http.StatusBadGateway
	if errors.Is(err, domain.ErrValidation) {
		status = http.StatusUnprocessableEntity
	}
	s.render(c, status, "contact.html", "Contact us", "contact", contactData{
		Lead:  lead,
		Error: service.LeadMessage(err),
	})
}
