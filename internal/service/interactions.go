package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"teakwood/storefront/internal/domain"
	"teakwood/storefront/internal/view"

	log "github.com/sirupsen/logrus"
)

const (
	ReviewNoticeTTL = 4 * time.Second
	CopyNoticeTTL   = 2500 * time.Millisecond
	// The clipboard value only has to survive the redirect back to the
	// product page.
	ClipboardTTL = 30 * time.Second
)

const (
	ReviewSuccessMessage = "Review submitted. Thank you!"
	ReviewFailureMessage = "Failed to submit review. Try again."
	CopySuccessMessage   = "Copied!"
	CopyFailureMessage   = "Copy failed"
	LeadSuccessMessage   = "Form submitted successfully. Our team will contact you soon."
	LeadFailureMessage   = "Failed to submit the form. Please try again."
)

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a transient inline message. It disappears on its own once its
// TTL passes.
type Notice struct {
	Kind NoticeKind `json:"kind"`
	Text string     `json:"text"`
	// TTL in milliseconds, used by the page script to fade the notice.
	TTL int64 `json:"ttl"`
}

func (n *Notice) IsError() bool {
	return n != nil && n.Kind == NoticeError
}

type noticeSlot string

const (
	slotReview    noticeSlot = "review"
	slotCopy      noticeSlot = "copy"
	slotClipboard noticeSlot = "clipboard"
)

// sessionKey scopes a slot to one visitor session on one product page.
func sessionKey(session, productID string, slot noticeSlot) string {
	return fmt.Sprintf("session:%s:product:%s:%s", session, productID, slot)
}

// Notices is the transient state of one visitor session on a product page.
type Notices struct {
	Review    *Notice
	Copy      *Notice
	Clipboard string
}

// Notices reads the session's notices for productID. The clipboard value
// is handed out once.
func (s *Service) Notices(ctx context.Context, session, productID string) Notices {
	var notices Notices
	if session == "" {
		return notices
	}

	notices.Review = s.readNotice(ctx, session, productID, slotReview)
	notices.Copy = s.readNotice(ctx, session, productID, slotCopy)

	key := sessionKey(session, productID, slotClipboard)
	clipboard, err := s.store.Get(ctx, key)
	if err != nil {
		log.WithError(err).Warn("Failed to read session clipboard")
	}
	if clipboard != "" {
		if err := s.store.Delete(ctx, key); err != nil {
			log.WithError(err).Warn("Failed to clear session clipboard")
		}
	}
	notices.Clipboard = clipboard

	return notices
}

func (s *Service) readNotice(ctx context.Context, session, productID string, slot noticeSlot) *Notice {
	raw, err := s.store.Get(ctx, sessionKey(session, productID, slot))
	if err != nil {
		log.WithError(err).Warnf("Failed to read %s notice", slot)
		return nil
	}
	if raw == "" {
		return nil
	}

	var notice Notice
	if err := json.Unmarshal([]byte(raw), &notice); err != nil {
		log.WithError(err).Warnf("Dropping unreadable %s notice", slot)
		return nil
	}
	return &notice
}

func (s *Service) setNotice(ctx context.Context, session, productID string, slot noticeSlot, kind NoticeKind, text string, ttl time.Duration) error {
	if session == "" {
		return nil
	}

	raw, err := json.Marshal(Notice{Kind: kind, Text: text, TTL: ttl.Milliseconds()})
	if err != nil {
		return fmt.Errorf("failed to encode notice: %w", err)
	}
	if err := s.store.Set(ctx, sessionKey(session, productID, slot), string(raw), ttl); err != nil {
		return fmt.Errorf("failed to store %s notice: %w", slot, err)
	}
	return nil
}

// SubmitReview validates the review locally, posts it and re-fetches the
// product so the new review shows. The outcome is also left as the
// session's review notice.
func (s *Service) SubmitReview(ctx context.Context, session, productID string, review domain.ReviewSubmission) (view.Detail[domain.Product], error) {
	review = review.Normalize()

	if err := review.Validate(); err != nil {
		s.noticeOrLog(ctx, session, productID, slotReview, NoticeError, err.Error(), ReviewNoticeTTL)
		return view.Detail[domain.Product]{}, err
	}

	if err := s.client.SubmitReview(ctx, productID, review); err != nil {
		log.WithError(err).Errorf("Submit review failed for product %s", productID)
		s.noticeOrLog(ctx, session, productID, slotReview, NoticeError, ReviewFailureMessage, ReviewNoticeTTL)
		return view.Detail[domain.Product]{}, err
	}

	s.noticeOrLog(ctx, session, productID, slotReview, NoticeSuccess, ReviewSuccessMessage, ReviewNoticeTTL)
	return s.Product(ctx, productID), nil
}

// CopyLink puts the product's canonical URL in the session clipboard of the
// productID page and leaves a short "Copied!" notice there.
func (s *Service) CopyLink(ctx context.Context, session, productID string, product *domain.Product, current string) (string, error) {
	link := s.links.ProductURL(product, current)

	if err := s.store.Set(ctx, sessionKey(session, productID, slotClipboard), link, ClipboardTTL); err != nil {
		log.WithError(err).Error("Copy failed")
		s.noticeOrLog(ctx, session, productID, slotCopy, NoticeError, CopyFailureMessage, CopyNoticeTTL)
		return "", fmt.Errorf("failed to copy link: %w", err)
	}

	s.noticeOrLog(ctx, session, productID, slotCopy, NoticeSuccess, CopySuccessMessage, CopyNoticeTTL)
	return link, nil
}

func (s *Service) noticeOrLog(ctx context.Context, session, productID string, slot noticeSlot, kind NoticeKind, text string, ttl time.Duration) {
	if err := s.setNotice(ctx, session, productID, slot, kind, text, ttl); err != nil {
		log.WithError(err).Warn("Failed to store notice")
	}
}

// SubmitLead forwards a contact-form lead. Validation failures never reach
// the network. A forwarded lead is archived when archiving is enabled;
// archive failures do not change the outcome.
func (s *Service) SubmitLead(ctx context.Context, lead domain.Lead) error {
	if err := lead.Validate(); err != nil {
		return err
	}

	if err := s.intake.Submit(ctx, lead); err != nil {
		log.WithError(err).Error("Lead submission failed")
		return err
	}

	if s.leads != nil {
		if err := s.leads.SaveLead(ctx, lead, s.clock.Now()); err != nil {
			log.WithError(err).Warn("Failed to archive lead")
		}
	}

	return nil
}

// LeadMessage is the user-facing text for a SubmitLead outcome.
func LeadMessage(err error) string {
	if err == nil {
		return LeadSuccessMessage
	}
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		return validation.Message
	}
	return LeadFailureMessage
}
