// Package streak maintains consecutive-attendance counters.
package streak

import (
	"time"

	"github.com/futebadosparcas/matchday/internal/domain"
)

// InactivityWindow is the longest gap between two games that keeps a streak alive.
const InactivityWindow = 30 * 24 * time.Hour

// New returns an empty streak for the user and optional schedule.
func New(userID string, scheduleID *string) domain.UserStreak {
	return domain.UserStreak{UserID: userID, ScheduleID: scheduleID}
}

// Advance records attendance at a game played at gameDate. Every game counts,
// two on the same day included; a game older than the last counted one leaves
// the counters unchanged. Replays of one game never reach Advance twice since
// the processed marker is claimed in the same commit.
func Advance(current domain.UserStreak, gameDate time.Time) domain.UserStreak {
	next := current
	next.UpdatedAt = gameDate

	if current.LastGameDate != nil && current.CurrentStreak > 0 {
		last := *current.LastGameDate
		if gameDate.Before(last) {
			return current
		}
		if gameDate.Sub(last) <= InactivityWindow {
			next.CurrentStreak++
		} else {
			next.CurrentStreak = 1
		}
	} else {
		next.CurrentStreak = 1
	}

	if next.CurrentStreak == 1 {
		started := gameDate
		next.StreakStartedAt = &started
	}
	if next.CurrentStreak > next.LongestStreak {
		next.LongestStreak = next.CurrentStreak
	}
	played := gameDate
	next.LastGameDate = &played
	return next
}

// IsExpired reports whether an active streak has gone past the inactivity window at now.
func IsExpired(s domain.UserStreak, now time.Time) bool {
	if s.CurrentStreak == 0 {
		return false
	}
	if s.LastGameDate == nil {
		return true
	}
	return now.Sub(*s.LastGameDate) > InactivityWindow
}

// Expire zeroes the current streak, keeping the longest streak.
func Expire(s domain.UserStreak, now time.Time) domain.UserStreak {
	s.CurrentStreak = 0
	s.StreakStartedAt = nil
	s.UpdatedAt = now
	return s
}
