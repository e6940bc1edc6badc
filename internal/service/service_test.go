package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"teakwood/storefront/internal/content"
	"teakwood/storefront/internal/domain"
	"teakwood/storefront/internal/state"
	"teakwood/storefront/internal/view"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorefront struct {
	mu sync.Mutex

	categories []domain.Category
	banners    []domain.Banner
	products   []domain.Product
	product    *domain.Product
	err        error
	reviewErr  error

	productCalls int
	reviews      []domain.ReviewSubmission
}

func (f *fakeStorefront) GetCategories(context.Context) ([]domain.Category, error) {
	return f.categories, f.err
}

func (f *fakeStorefront) GetBanners(context.Context) ([]domain.Banner, error) {
	return f.banners, f.err
}

func (f *fakeStorefront) GetProducts(context.Context) ([]domain.Product, error) {
	return f.products, f.err
}

func (f *fakeStorefront) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.productCalls++
	if f.err != nil {
		return nil, f.err
	}
	if f.product == nil || f.product.Key() != id {
		return nil, &domain.StatusError{Code: 404, Status: "404 Not Found"}
	}
	p := *f.product
	return &p, nil
}

func (f *fakeStorefront) SubmitReview(_ context.Context, _ string, review domain.ReviewSubmission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reviews = append(f.reviews, review)
	if f.reviewErr != nil {
		return f.reviewErr
	}
	if f.product != nil {
		f.product.Reviews = append(f.product.Reviews, domain.Review{
			Rating:  domain.NewNumber(float64(review.Rating)),
			Comment: review.Comment,
		})
	}
	return nil
}

type fakeIntake struct {
	err   error
	leads []domain.Lead
}

func (f *fakeIntake) Submit(_ context.Context, lead domain.Lead) error {
	f.leads = append(f.leads, lead)
	return f.err
}

type fakeLeads struct {
	err   error
	saved []time.Time
}

func (f *fakeLeads) EnsureSchema(context.Context) error { return nil }

func (f *fakeLeads) SaveLead(_ context.Context, _ domain.Lead, receivedAt time.Time) error {
	f.saved = append(f.saved, receivedAt)
	return f.err
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, error) { return "", errors.New("down") }
func (failingStore) Set(context.Context, string, string, time.Duration) error {
	return errors.New("down")
}
func (failingStore) Delete(context.Context, string) error { return errors.New("down") }

type fixture struct {
	api    *fakeStorefront
	intake *fakeIntake
	leads  *fakeLeads
	clock  *clock.Mock
	svc    *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clk := clock.NewMock()
	clk.Set(time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC))

	f := &fixture{
		api:    &fakeStorefront{},
		intake: &fakeIntake{},
		leads:  &fakeLeads{},
		clock:  clk,
	}
	f.svc = NewService(f.api, f.intake, f.leads, state.NewMemoryTransientStore(clk), clk, view.Links{
		SiteURL:        "https://www.teakwoodfactory.com",
		WhatsAppNumber: "918904088131",
	})
	return f
}

func featured(n int, mutate func(i int, p *domain.Product)) []domain.Product {
	products := make([]domain.Product, 0, n)
	for i := 0; i < n; i++ {
		p := domain.Product{ID: domain.Identifier(fmt.Sprint(i + 1)), Name: fmt.Sprintf("Chair %d", i+1), IsFeatured: true}
		if mutate != nil {
			mutate(i, &p)
		}
		products = append(products, p)
	}
	return products
}

func TestHomeRegionsFailIndependently(t *testing.T) {
	f := newFixture(t)
	f.api.err = domain.ErrTransport

	page := f.svc.Home(context.Background(), FeaturedQuery{})

	assert.True(t, page.Banners.Empty())
	assert.True(t, page.Banners.Failed)
	assert.True(t, page.Categories.Empty())
	assert.True(t, page.Featured.Products.Empty())
	assert.Len(t, page.Testimonials, len(content.Testimonials))
	assert.Len(t, page.Benefits, len(content.Benefits))
}

func TestCategoriesEmptyList(t *testing.T) {
	f := newFixture(t)

	list := f.svc.Categories(context.Background())
	assert.True(t, list.Empty())
	assert.False(t, list.Failed)
}

func TestFeatured(t *testing.T) {
	f := newFixture(t)
	f.api.products = append(featured(10, func(i int, p *domain.Product) {
		p.IsNew = i%2 == 0
		p.IsBestseller = i == 3
	}), domain.Product{ID: "99", Name: "Hidden"})

	t.Run("first page", func(t *testing.T) {
		grid := f.svc.Featured(context.Background(), FeaturedQuery{})
		assert.Equal(t, FeaturedPageSize, grid.Products.Len())
		assert.True(t, grid.HasMore)
		assert.Equal(t, FeaturedAll, grid.Filter)
	})

	t.Run("more", func(t *testing.T) {
		grid := f.svc.Featured(context.Background(), FeaturedQuery{More: true})
		assert.Equal(t, 10, grid.Products.Len())
	})

	t.Run("new", func(t *testing.T) {
		grid := f.svc.Featured(context.Background(), FeaturedQuery{Filter: FeaturedNew})
		assert.Equal(t, 5, grid.Products.Len())
		assert.False(t, grid.HasMore)
	})

	t.Run("bestseller", func(t *testing.T) {
		grid := f.svc.Featured(context.Background(), FeaturedQuery{Filter: "BESTSELLER"})
		require.Equal(t, 1, grid.Products.Len())
		assert.Equal(t, "Chair 4", grid.Products.Items[0].Name)
	})

	assert.Equal(t, FeaturedAll, ParseFeaturedFilter("sale"))
}

func TestProducts(t *testing.T) {
	f := newFixture(t)
	f.api.products = []domain.Product{
		{ID: "1", Name: "Teak Swing", Category: &domain.CategoryRef{ID: "3", Name: "Outdoor"}},
		{ID: "2", Name: "Sofa", Category: &domain.CategoryRef{ID: "4", Name: "Living"}},
	}

	list := f.svc.Products(context.Background(), ProductQuery{Search: "swing"})
	require.Equal(t, 1, list.Len())
	assert.Equal(t, "Teak Swing", list.Items[0].Name)

	list = f.svc.Products(context.Background(), ProductQuery{Category: "4"})
	require.Equal(t, 1, list.Len())
	assert.Equal(t, "Sofa", list.Items[0].Name)
}

func TestProductNotFound(t *testing.T) {
	f := newFixture(t)

	detail := f.svc.Product(context.Background(), "nope")
	assert.False(t, detail.Found())
	assert.True(t, detail.NotFound(domain.ErrNotFound))
}

func TestSubmitReviewValidation(t *testing.T) {
	f := newFixture(t)
	f.api.product = &domain.Product{ID: "7", Name: "Teak Swing"}

	_, err := f.svc.SubmitReview(context.Background(), "s1", "7", domain.ReviewSubmission{Rating: 0, Comment: "Lovely swing"})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "Please select a rating (1-5).", f.svc.Notices(context.Background(), "s1", "7").Review.Text)

	_, err = f.svc.SubmitReview(context.Background(), "s1", "7", domain.ReviewSubmission{Rating: 4, Comment: "  ok  "})
	require.ErrorIs(t, err, domain.ErrValidation)
	notice := f.svc.Notices(context.Background(), "s1", "7").Review
	require.NotNil(t, notice)
	assert.True(t, notice.IsError())
	assert.Equal(t, "Please enter a comment (at least 5 characters).", notice.Text)

	assert.Empty(t, f.api.reviews)
	assert.Zero(t, f.api.productCalls)
}

func TestSubmitReviewPostsAndRefetches(t *testing.T) {
	f := newFixture(t)
	f.api.product = &domain.Product{ID: "7", Name: "Teak Swing"}

	detail, err := f.svc.SubmitReview(context.Background(), "s1", "7", domain.ReviewSubmission{Rating: 4, Comment: " Great product "})
	require.NoError(t, err)

	require.Len(t, f.api.reviews, 1)
	assert.Equal(t, domain.ReviewSubmission{Rating: 4, Comment: "Great product"}, f.api.reviews[0])
	assert.Equal(t, 1, f.api.productCalls)

	require.True(t, detail.Found())
	require.Len(t, detail.Item.Reviews, 1)
	assert.Equal(t, "Great product", detail.Item.Reviews[0].Comment)

	notice := f.svc.Notices(context.Background(), "s1", "7").Review
	require.NotNil(t, notice)
	assert.Equal(t, ReviewSuccessMessage, notice.Text)
	assert.EqualValues(t, 4000, notice.TTL)
	assert.Nil(t, f.svc.Notices(context.Background(), "s1", "8").Review)

	f.clock.Add(ReviewNoticeTTL)
	assert.Nil(t, f.svc.Notices(context.Background(), "s1", "7").Review)
}

func TestSubmitReviewFailure(t *testing.T) {
	f := newFixture(t)
	f.api.product = &domain.Product{ID: "7", Name: "Teak Swing"}
	f.api.reviewErr = &domain.StatusError{Code: 500}

	_, err := f.svc.SubmitReview(context.Background(), "s1", "7", domain.ReviewSubmission{Rating: 5, Comment: "Sturdy and pretty"})
	require.ErrorIs(t, err, domain.ErrStatus)
	assert.Zero(t, f.api.productCalls)
	assert.Equal(t, ReviewFailureMessage, f.svc.Notices(context.Background(), "s1", "7").Review.Text)
}

func TestCopyLink(t *testing.T) {
	f := newFixture(t)
	product := &domain.Product{ID: "7", UUID: "3f1c9a52-8a43-4b9e-9a57-0d1c3e4f5a6b", Name: "Teak Swing"}

	link, err := f.svc.CopyLink(context.Background(), "s1", "7", product, "http://localhost/product/7")
	require.NoError(t, err)
	assert.Equal(t, "https://www.teakwoodfactory.com/product/3f1c9a52-8a43-4b9e-9a57-0d1c3e4f5a6b", link)

	notices := f.svc.Notices(context.Background(), "s1", "7")
	assert.Equal(t, link, notices.Clipboard)
	require.NotNil(t, notices.Copy)
	assert.Equal(t, CopySuccessMessage, notices.Copy.Text)

	// the clipboard is handed out once, the notice stays until it expires
	assert.Empty(t, f.svc.Notices(context.Background(), "s1", "7").Clipboard)

	elsewhere := f.svc.Notices(context.Background(), "s1", "8")
	assert.Nil(t, elsewhere.Copy)
	assert.Empty(t, elsewhere.Clipboard)

	f.clock.Add(2 * time.Second)
	assert.NotNil(t, f.svc.Notices(context.Background(), "s1", "7").Copy)

	f.clock.Add(500 * time.Millisecond)
	assert.Nil(t, f.svc.Notices(context.Background(), "s1", "7").Copy)

	other := f.svc.Notices(context.Background(), "s2", "7")
	assert.Nil(t, other.Copy)
	assert.Empty(t, other.Clipboard)
}

func TestCopyLinkFallsBackToCurrentPage(t *testing.T) {
	f := newFixture(t)

	link, err := f.svc.CopyLink(context.Background(), "s1", "7", &domain.Product{ID: "7", Name: "Teak Swing"}, "http://localhost/product/7")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost/product/7", link)
}

func TestCopyLinkStoreFailure(t *testing.T) {
	f := newFixture(t)
	f.svc.store = failingStore{}

	_, err := f.svc.CopyLink(context.Background(), "s1", "7", &domain.Product{ID: "7", Name: "x"}, "http://localhost/product/7")
	assert.Error(t, err)
}

func TestSubmitLead(t *testing.T) {
	t.Run("blank fields never reach the network", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.SubmitLead(context.Background(), domain.Lead{Name: "Asha", Phone: "  ", Message: "Hi"})
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, "Please complete all fields.", LeadMessage(err))
		assert.Empty(t, f.intake.leads)
		assert.Empty(t, f.leads.saved)
	})

	t.Run("accepted lead is archived", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.SubmitLead(context.Background(), domain.Lead{Name: "Asha", Phone: "98450", Message: "Need a bed"})
		require.NoError(t, err)
		assert.Equal(t, LeadSuccessMessage, LeadMessage(err))
		assert.Len(t, f.intake.leads, 1)
		require.Len(t, f.leads.saved, 1)
		assert.Equal(t, f.clock.Now(), f.leads.saved[0])
	})

	t.Run("archive failure does not fail the submission", func(t *testing.T) {
		f := newFixture(t)
		f.leads.err = errors.New("db down")

		assert.NoError(t, f.svc.SubmitLead(context.Background(), domain.Lead{Name: "Asha", Phone: "98450", Message: "Hi"}))
	})

	t.Run("intake rejection", func(t *testing.T) {
		f := newFixture(t)
		f.intake.err = &domain.StatusError{Code: 302}

		err := f.svc.SubmitLead(context.Background(), domain.Lead{Name: "Asha", Phone: "98450", Message: "Hi"})
		require.ErrorIs(t, err, domain.ErrStatus)
		assert.Equal(t, LeadFailureMessage, LeadMessage(err))
		assert.Empty(t, f.leads.saved)
	})

	t.Run("no archive configured", func(t *testing.T) {
		f := newFixture(t)
		f.svc.leads = nil

		assert.NoError(t, f.svc.SubmitLead(context.Background(), domain.Lead{Name: "Asha", Phone: "98450", Message: "Hi"}))
	})
}

func TestFAQ(t *testing.T) {
	f := newFixture(t)

	all := f.svc.FAQ(FAQQuery{})
	assert.Len(t, all.Items, len(content.FAQs))
	assert.Empty(t, all.NoMatch)
	assert.Equal(t, "0,1,2,3,4,5", all.OpenAll)
	for _, item := range all.Items {
		assert.False(t, item.Open)
	}

	warranty := f.svc.FAQ(FAQQuery{Search: "  Warranty "})
	require.Len(t, warranty.Items, 1)
	assert.Equal(t, content.FAQs[4].Question, warranty.Items[0].Question)
	assert.Equal(t, "0", warranty.Items[0].ToggleOpen)

	none := f.svc.FAQ(FAQQuery{Search: "zzzz"})
	assert.Empty(t, none.Items)
	assert.Equal(t, content.FAQNoMatchMessage, none.NoMatch)

	open := f.svc.FAQ(FAQQuery{Open: "1,3"})
	assert.True(t, open.Items[1].Open)
	assert.True(t, open.Items[3].Open)
	assert.False(t, open.Items[0].Open)
	assert.Equal(t, "3", open.Items[1].ToggleOpen)
	assert.Equal(t, "0,1,3", open.Items[0].ToggleOpen)

	expanded := f.svc.FAQ(FAQQuery{ExpandAll: true})
	for _, item := range expanded.Items {
		assert.True(t, item.Open)
	}
}
