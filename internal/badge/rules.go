// Package badge decides which badges a player earns from a finished game and
// applies awards against the badges the player already holds.
package badge

import (
	"github.com/futebadosparcas/matchday/internal/domain"
)

// Policy controls how often a badge may be granted.
type Policy int

const (
	// Repeatable badges are granted every time the rule fires.
	Repeatable Policy = iota
	// OncePerPeriod badges are granted at most once per calendar month.
	OncePerPeriod
	// OneShot badges are granted once and never again.
	OneShot
)

// Snapshot is everything a rule may look at. Stats, Streak and Level already
// include the game being finalized.
type Snapshot struct {
	UserID  string
	Outcome domain.PlayerGameOutcome
	Stats   domain.UserStatistics
	Streak  domain.UserStreak
	Level   int

	// MonthGoals is the player's goal total in the game's month, this game included.
	MonthGoals int
	// MonthLeaderGoals is the highest monthly total among all other players.
	MonthLeaderGoals int

	// MonthScheduleGames is the number of finished games of the game's schedule
	// in the month. MonthScheduleAttended counts the ones this player played.
	MonthScheduleGames    int
	MonthScheduleAttended int
}

// Rule is one predicate with its reward.
type Rule struct {
	Badge  domain.BadgeType
	Rarity domain.BadgeRarity
	Policy Policy
	Check  func(Snapshot) bool
}

var (
	HatTrick = Rule{domain.BadgeHatTrick, domain.RarityRaro, Repeatable, func(s Snapshot) bool {
		return s.Outcome.Goals >= HatTrickGoals
	}}

	Paredao = Rule{domain.BadgeParedao, domain.RarityRaro, Repeatable, func(s Snapshot) bool {
		return s.Outcome.Position == domain.PositionGoalkeeper && s.Outcome.CleanSheet()
	}}

	ArtilheiroMes = Rule{domain.BadgeArtilheiroMes, domain.RarityEpico, OncePerPeriod, func(s Snapshot) bool {
		return s.MonthGoals >= MonthlyTopScorerGoals && s.MonthGoals >= s.MonthLeaderGoals
	}}

	Fominha = Rule{domain.BadgeFominha, domain.RarityRaro, OncePerPeriod, func(s Snapshot) bool {
		return s.MonthScheduleGames >= FullMonthMinGames && s.MonthScheduleAttended >= s.MonthScheduleGames
	}}

	// Streak badges fire on the game that reaches the length, not on every game after it.
	Streak7 = Rule{domain.BadgeStreak7, domain.RarityComum, Repeatable, func(s Snapshot) bool {
		return s.Streak.CurrentStreak == StreakShort
	}}

	Streak30 = Rule{domain.BadgeStreak30, domain.RarityEpico, Repeatable, func(s Snapshot) bool {
		return s.Streak.CurrentStreak == StreakLong
	}}

	OrganizadorMaster = Rule{domain.BadgeOrganizadorMaster, domain.RarityEpico, OneShot, func(s Snapshot) bool {
		return s.Stats.GamesOrganized >= OrganizerMasterGames
	}}

	Influencer = Rule{domain.BadgeInfluencer, domain.RarityRaro, OneShot, func(s Snapshot) bool {
		return s.Stats.InvitesAccepted >= InfluencerInvites
	}}

	Lenda = Rule{domain.BadgeLenda, domain.RarityLendario, OneShot, func(s Snapshot) bool {
		return s.Stats.TotalGames >= LegendGames
	}}

	Mito = Rule{domain.BadgeMito, domain.RarityLendario, OneShot, func(s Snapshot) bool {
		return s.Stats.BestPlayerCount >= MythMVPs
	}}

	FaixaPreta = Rule{domain.BadgeFaixaPreta, domain.RarityLendario, OneShot, func(s Snapshot) bool {
		return s.Level >= BlackBeltLevel
	}}
)

// Rules is the full rule set in evaluation order.
var Rules = []Rule{
	HatTrick,
	Paredao,
	ArtilheiroMes,
	Fominha,
	Streak7,
	Streak30,
	OrganizadorMaster,
	Influencer,
	Lenda,
	Mito,
	FaixaPreta,
}

// RuleFor returns the rule granting b.
func RuleFor(b domain.BadgeType) (Rule, bool) {
	for _, r := range Rules {
		if r.Badge == b {
			return r, true
		}
	}
	return Rule{}, false
}
