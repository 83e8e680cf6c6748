package detector

import (
	"time"

	"github.com/mauv0809/kindred/internal/metrics"
)

// Outcome is the terminal state a single swipe reached.
type Outcome string

const (
	OutcomeIgnored        Outcome = "ignored"
	OutcomeNoReciprocal   Outcome = "no_reciprocal"
	OutcomeProfileMissing Outcome = "profile_missing"
	OutcomeMatched        Outcome = "matched"
	OutcomeFailed         Outcome = "failed"
)

// Detector turns reciprocal likes into match records.
type Detector struct {
	store   Store
	metrics metrics.Metrics
	now     func() time.Time
}
