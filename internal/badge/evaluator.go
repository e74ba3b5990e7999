package badge

import (
	"time"

	"github.com/futebadosparcas/matchday/internal/domain"
)

// Award is a badge whose rule fired, before existing state is consulted.
type Award struct {
	Badge  domain.BadgeType
	Policy Policy
}

// Evaluate runs every rule against the snapshot.
func Evaluate(s Snapshot) []Award {
	var out []Award
	for _, r := range Rules {
		if r.Check(s) {
			out = append(out, Award{Badge: r.Badge, Policy: r.Policy})
		}
	}
	return out
}

// Grant is a badge actually awarded, with the record to persist.
type Grant struct {
	Badge domain.UserBadge
	New   bool
}

// Apply filters awards against the badges userID already holds and returns
// the records to write. OneShot badges already held are skipped, OncePerPeriod
// badges already earned in the month of now are skipped, everything else
// increments Count and LastEarnedAt.
func Apply(userID string, existing map[domain.BadgeType]domain.UserBadge, awards []Award, now time.Time) []Grant {
	var grants []Grant
	for _, c := range awards {
		held, ok := existing[c.Badge]
		if !ok {
			grants = append(grants, Grant{
				New: true,
				Badge: domain.UserBadge{
					UserID:       userID,
					BadgeID:      c.Badge,
					Count:        1,
					UnlockedAt:   now,
					LastEarnedAt: now,
				},
			})
			continue
		}

		switch c.Policy {
		case OneShot:
			continue
		case OncePerPeriod:
			if PeriodKey(held.LastEarnedAt) == PeriodKey(now) {
				continue
			}
		}

		held.Count++
		held.LastEarnedAt = now
		grants = append(grants, Grant{Badge: held})
	}
	return grants
}

// PeriodKey returns the monthly period a timestamp belongs to.
func PeriodKey(t time.Time) string {
	return t.Format(PeriodLayout)
}
