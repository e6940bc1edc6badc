package view

import (
	"fmt"
	"time"

	"teakwood/storefront/internal/domain"
)

const (
	DefaultMinDeliveryDays = 14
	DefaultMaxDeliveryDays = 25
)

type DeliveryEstimate struct {
	MinDays  int
	MaxDays  int
	Duration string // "14-25 days"
	Range    string // "Nov 1 - Nov 12"
}

// EstimateDelivery picks the first non-zero of the delivery, shipping and
// lead-time fields for each bound, falls back to the defaults, and swaps
// the bounds if they are inverted.
func EstimateDelivery(p *domain.Product, now time.Time) DeliveryEstimate {
	if p == nil {
		return DeliveryEstimate{Duration: "N/A"}
	}

	minDays := firstDays(DefaultMinDeliveryDays, p.MinDeliveryDays, p.ShippingMinDays, p.LeadTimeMin)
	maxDays := firstDays(DefaultMaxDeliveryDays, p.MaxDeliveryDays, p.ShippingMaxDays, p.LeadTimeMax)

	if minDays > maxDays {
		minDays, maxDays = maxDays, minDays
	}

	duration := fmt.Sprintf("%d-%d days", minDays, maxDays)
	if minDays == maxDays {
		duration = fmt.Sprintf("%d days", minDays)
	}

	from := now.AddDate(0, 0, minDays)
	to := now.AddDate(0, 0, maxDays)

	return DeliveryEstimate{
		MinDays:  minDays,
		MaxDays:  maxDays,
		Duration: duration,
		Range:    fmt.Sprintf("%s - %s", from.Format("Jan 2"), to.Format("Jan 2")),
	}
}

func firstDays(fallback int, candidates ...domain.Number) int {
	for _, n := range candidates {
		if days := n.Int(); days != 0 {
			return days
		}
	}
	return fallback
}
