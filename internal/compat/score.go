// Package compat computes the compatibility score of two user profiles.
package compat

import (
	"github.com/mauv0809/kindred/internal/dating"
	"github.com/samber/lo"
)

const (
	BaseScore = 50
	// ZodiacBonus is awarded when the second user's sign is in the first user's row.
	ZodiacBonus = 20
	// InterestBonus is awarded per shared interest, up to MaxInterestBonus.
	InterestBonus    = 5
	MaxInterestBonus = 20
	// MaxScore caps the total. The bonuses above cannot reach it (max 90).
	MaxScore = 100
)

// Score returns the compatibility of a with b in [0, 100]. It is pure and
// never fails: absent fields simply earn no bonus.
func Score(a, b dating.UserProfile) int {
	score := BaseScore
	if IsCompatible(a.ZodiacSign, b.ZodiacSign) {
		score += ZodiacBonus
	}
	score += min(SharedInterests(a.Interests, b.Interests)*InterestBonus, MaxInterestBonus)
	return max(min(score, MaxScore), 0)
}

// SharedInterests counts the distinct interests present in both lists.
func SharedInterests(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	return len(lo.Intersect(lo.Uniq(a), lo.Uniq(b)))
}
