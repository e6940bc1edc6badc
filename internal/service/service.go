package service

import (
	"context"
	"strings"
	"time"

	"teakwood/storefront/internal/client"
	"teakwood/storefront/internal/content"
	"teakwood/storefront/internal/domain"
	"teakwood/storefront/internal/repository"
	"teakwood/storefront/internal/state"
	"teakwood/storefront/internal/view"

	"github.com/benbjohnson/clock"
	"golang.org/x/sync/errgroup"
)

// FeaturedPageSize is how many featured products show before "more".
const FeaturedPageSize = 8

type Service struct {
	client client.StorefrontClient
	intake client.IntakeClient
	leads  repository.LeadRepository
	store  state.TransientStore
	clock  clock.Clock
	links  view.Links
}

// NewService wires the storefront operations. leads may be nil, in which
// case forwarded leads are not archived.
func NewService(
	client client.StorefrontClient,
	intake client.IntakeClient,
	leads repository.LeadRepository,
	store state.TransientStore,
	clk clock.Clock,
	links view.Links,
) *Service {
	return &Service{
		client: client,
		intake: intake,
		leads:  leads,
		store:  store,
		clock:  clk,
		links:  links,
	}
}

func (s *Service) Links() view.Links {
	return s.links
}

func (s *Service) Now() time.Time {
	return s.clock.Now()
}

type FeaturedFilter string

const (
	FeaturedAll        FeaturedFilter = "all"
	FeaturedNew        FeaturedFilter = "new"
	FeaturedBestseller FeaturedFilter = "bestseller"
)

var FeaturedFilters = []FeaturedFilter{FeaturedAll, FeaturedNew, FeaturedBestseller}

func (f FeaturedFilter) String() string {
	return string(f)
}

func (f FeaturedFilter) Label() string {
	switch f {
	case FeaturedNew:
		return "New"
	case FeaturedBestseller:
		return "Bestsellers"
	default:
		return "All"
	}
}

// ParseFeaturedFilter falls back to FeaturedAll for unknown values.
func ParseFeaturedFilter(v string) FeaturedFilter {
	switch FeaturedFilter(strings.ToLower(strings.TrimSpace(v))) {
	case FeaturedNew:
		return FeaturedNew
	case FeaturedBestseller:
		return FeaturedBestseller
	default:
		return FeaturedAll
	}
}

func (f FeaturedFilter) Accepts(p domain.Product) bool {
	switch f {
	case FeaturedNew:
		return p.IsNew
	case FeaturedBestseller:
		return p.IsBestseller
	default:
		return true
	}
}

type FeaturedQuery struct {
	Filter FeaturedFilter
	More   bool
}

type FeaturedGrid struct {
	Products view.List[domain.Product]
	Filter   FeaturedFilter
	More     bool
	// HasMore is set when products were cut off by the page size.
	HasMore bool
}

type HomePage struct {
	Banners      view.List[domain.Banner]
	Categories   view.List[domain.Category]
	Featured     FeaturedGrid
	Testimonials []content.Testimonial
	Benefits     []content.Benefit
}

// Home loads the home page regions concurrently. Each region handles its
// own failure; none of them cancels the others.
func (s *Service) Home(ctx context.Context, query FeaturedQuery) HomePage {
	page := HomePage{
		Testimonials: content.Testimonials,
		Benefits:     content.Benefits,
	}

	var g errgroup.Group
	g.Go(func() error {
		page.Banners = view.LoadList(ctx, "banners", s.client.GetBanners)
		return nil
	})
	g.Go(func() error {
		page.Categories = s.Categories(ctx)
		return nil
	})
	g.Go(func() error {
		page.Featured = s.Featured(ctx, query)
		return nil
	})
	_ = g.Wait()

	return page
}

func (s *Service) Categories(ctx context.Context) view.List[domain.Category] {
	return view.LoadList(ctx, "categories", s.client.GetCategories)
}

func (s *Service) Featured(ctx context.Context, query FeaturedQuery) FeaturedGrid {
	filter := ParseFeaturedFilter(query.Filter.String())

	all := view.LoadList(ctx, "featured products", s.client.GetProducts)
	filtered := all.
		Filter(func(p domain.Product) bool { return p.IsFeatured }).
		Filter(filter.Accepts)

	grid := FeaturedGrid{
		Products: filtered,
		Filter:   filter,
		More:     query.More,
		HasMore:  filtered.Len() > FeaturedPageSize,
	}
	if !query.More {
		grid.Products = filtered.Limit(FeaturedPageSize)
	}
	return grid
}

type ProductQuery struct {
	Search   string
	Category string
}

func (s *Service) Products(ctx context.Context, query ProductQuery) view.List[domain.Product] {
	all := view.LoadList(ctx, "products", s.client.GetProducts)
	return all.Filter(func(p domain.Product) bool {
		return p.MatchesSearch(query.Search) && p.InCategory(query.Category)
	})
}

func (s *Service) Product(ctx context.Context, id string) view.Detail[domain.Product] {
	return view.LoadDetail(ctx, "product "+id, func(ctx context.Context) (*domain.Product, error) {
		return s.client.GetProduct(ctx, id)
	})
}
