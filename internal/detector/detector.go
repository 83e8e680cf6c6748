// Package detector materializes a match when a like meets its reciprocal like.
//
// Events may be redelivered and the two sides of a pair may be handled
// concurrently. Both invocations compute the same record under the same
// pair id, so the store write is a plain overwrite and either order is safe.
// The reciprocity read and the write are not transactional: if both swipes
// land while neither invocation can see the other, no match is written until
// one of the events is redelivered.
package detector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/kindred/internal/compat"
	"github.com/mauv0809/kindred/internal/dating"
	"github.com/mauv0809/kindred/internal/metrics"
	"golang.org/x/sync/errgroup"
)

// New creates a new Detector.
func New(store Store, metrics metrics.Metrics) *Detector {
	return &Detector{
		store:   store,
		metrics: metrics,
		now:     time.Now,
	}
}

// HandleSwipe reacts to one created swipe. A nil error means the event can be
// acknowledged, whatever the outcome. A missing profile is returned as an
// error wrapping dating.ErrNotFound so the event is retried later.
func (d *Detector) HandleSwipe(ctx context.Context, swipe dating.Swipe, dryRun bool) (Outcome, error) {
	startTime := time.Now()
	defer func() {
		d.metrics.ObserveDetectionDuration(time.Since(startTime).Seconds())
	}()
	d.metrics.IncSwipesProcessed()

	if swipe.Action != dating.ActionLike {
		log.Debug("Swipe is not a like. Ignoring.", "swiperID", swipe.SwiperID, "targetID", swipe.TargetID, "action", swipe.Action)
		return OutcomeIgnored, nil
	}
	if swipe.SwiperID == "" || swipe.TargetID == "" || swipe.SwiperID == swipe.TargetID {
		log.Warn("Like has an invalid user pair. Ignoring.", "swiperID", swipe.SwiperID, "targetID", swipe.TargetID)
		return OutcomeIgnored, nil
	}

	reciprocal, err := d.store.FindLike(ctx, swipe.TargetID, swipe.SwiperID)
	if err != nil {
		log.Error("Failed to look up reciprocal like", "error", err, "swiperID", swipe.SwiperID, "targetID", swipe.TargetID)
		return OutcomeFailed, fmt.Errorf("failed to look up reciprocal like: %w", err)
	}
	if reciprocal == nil {
		log.Info("No reciprocal like yet", "swiperID", swipe.SwiperID, "targetID", swipe.TargetID)
		return OutcomeNoReciprocal, nil
	}

	matchID, low, high := dating.PairID(swipe.SwiperID, swipe.TargetID)
	log.Debug("Reciprocal like found", "matchID", matchID)

	lowProfile, highProfile, err := d.fetchProfiles(ctx, low, high)
	if err != nil {
		if errors.Is(err, dating.ErrNotFound) {
			log.Warn("Profile missing for mutual like. Leaving event for redelivery.", "matchID", matchID, "error", err)
			return OutcomeProfileMissing, err
		}
		log.Error("Failed to fetch profiles", "error", err, "matchID", matchID)
		return OutcomeFailed, err
	}

	match := &dating.Match{
		MatchID:            matchID,
		UserLow:            low,
		UserHigh:           high,
		CompatibilityScore: compat.Score(*lowProfile, *highProfile),
		MatchedAt:          d.matchedAt(swipe, *reciprocal),
	}

	if dryRun {
		log.Info("Dry run. Skipping match write.", "matchID", match.MatchID, "score", match.CompatibilityScore)
		return OutcomeMatched, nil
	}

	if err := d.store.UpsertMatch(ctx, match); err != nil {
		log.Error("Failed to write match", "error", err, "matchID", match.MatchID)
		return OutcomeFailed, fmt.Errorf("failed to write match %s: %w", match.MatchID, err)
	}
	d.metrics.IncMatchesWritten()
	log.Info("Match written", "matchID", match.MatchID, "score", match.CompatibilityScore)
	return OutcomeMatched, nil
}

// fetchProfiles loads both profiles concurrently. The first failure wins.
func (d *Detector) fetchProfiles(ctx context.Context, low, high string) (*dating.UserProfile, *dating.UserProfile, error) {
	var lowProfile, highProfile *dating.UserProfile
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := d.store.GetProfile(gctx, low)
		if err == nil && p == nil {
			err = dating.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get profile %s: %w", low, err)
		}
		lowProfile = p
		return nil
	})
	g.Go(func() error {
		p, err := d.store.GetProfile(gctx, high)
		if err == nil && p == nil {
			err = dating.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get profile %s: %w", high, err)
		}
		highProfile = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return lowProfile, highProfile, nil
}

// matchedAt is the creation time of the later of the two likes, so every
// invocation for the pair writes the same value.
func (d *Detector) matchedAt(a, b dating.Swipe) time.Time {
	at := a.CreatedAt
	if b.CreatedAt.After(at) {
		at = b.CreatedAt
	}
	if at.IsZero() {
		return d.now().UTC()
	}
	return at.UTC()
}
