package domain

import (
	"fmt"
	"slices"
	"strings"
)

// GameStatus is the lifecycle state of a game. Unknown values are rejected at
// parse time instead of being replaced with a default.
type GameStatus string

const (
	GameStatusScheduled GameStatus = "SCHEDULED"
	GameStatusConfirmed GameStatus = "CONFIRMED"
	GameStatusLive      GameStatus = "LIVE"
	GameStatusFinished  GameStatus = "FINISHED"
	GameStatusCancelled GameStatus = "CANCELLED"
)

var gameStatuses = []GameStatus{
	GameStatusScheduled,
	GameStatusConfirmed,
	GameStatusLive,
	GameStatusFinished,
	GameStatusCancelled,
}

// ParseGameStatus converts a stored or transported value into a GameStatus.
func ParseGameStatus(raw string) (GameStatus, error) {
	return parseEnum(raw, gameStatuses, ErrUnknownStatus)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *GameStatus) UnmarshalText(b []byte) error {
	v, err := ParseGameStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Position is where a confirmed player plays.
type Position string

const (
	PositionField      Position = "FIELD"
	PositionGoalkeeper Position = "GOALKEEPER"
)

var positions = []Position{PositionField, PositionGoalkeeper}

func ParsePosition(raw string) (Position, error) {
	return parseEnum(raw, positions, ErrUnknownPosition)
}

func (p *Position) UnmarshalText(b []byte) error {
	v, err := ParsePosition(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ConfirmationStatus is the attendance state of a confirmation.
type ConfirmationStatus string

const (
	ConfirmationConfirmed ConfirmationStatus = "CONFIRMED"
	ConfirmationPending   ConfirmationStatus = "PENDING"
	ConfirmationCancelled ConfirmationStatus = "CANCELLED"
	ConfirmationWaitlist  ConfirmationStatus = "WAITLIST"
)

var confirmationStatuses = []ConfirmationStatus{
	ConfirmationConfirmed,
	ConfirmationPending,
	ConfirmationCancelled,
	ConfirmationWaitlist,
}

func ParseConfirmationStatus(raw string) (ConfirmationStatus, error) {
	return parseEnum(raw, confirmationStatuses, ErrUnknownStatus)
}

func (s *ConfirmationStatus) UnmarshalText(b []byte) error {
	v, err := ParseConfirmationStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// PaymentStatus of a confirmation. Carried through, never interpreted here.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentExempt  PaymentStatus = "EXEMPT"
)

var paymentStatuses = []PaymentStatus{PaymentPending, PaymentPaid, PaymentExempt}

func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	return parseEnum(raw, paymentStatuses, ErrUnknownStatus)
}

func (s *PaymentStatus) UnmarshalText(b []byte) error {
	v, err := ParsePaymentStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// TeamResult is the outcome of a game from one player's point of view.
type TeamResult string

const (
	ResultWin  TeamResult = "WIN"
	ResultLoss TeamResult = "LOSS"
	ResultDraw TeamResult = "DRAW"
)

var teamResults = []TeamResult{ResultWin, ResultLoss, ResultDraw}

func ParseTeamResult(raw string) (TeamResult, error) {
	return parseEnum(raw, teamResults, ErrUnknownResult)
}

func (r *TeamResult) UnmarshalText(b []byte) error {
	v, err := ParseTeamResult(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Division is a league tier. Divisions are ordered BRONZE < PRATA < OURO < DIAMANTE.
type Division string

const (
	DivisionBronze   Division = "BRONZE"
	DivisionPrata    Division = "PRATA"
	DivisionOuro     Division = "OURO"
	DivisionDiamante Division = "DIAMANTE"
)

// Divisions lists every division from lowest to highest.
var Divisions = []Division{DivisionBronze, DivisionPrata, DivisionOuro, DivisionDiamante}

func ParseDivision(raw string) (Division, error) {
	return parseEnum(raw, Divisions, ErrUnknownDivision)
}

func (d *Division) UnmarshalText(b []byte) error {
	v, err := ParseDivision(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Rank returns the zero-based position of the division in the ladder, or -1.
func (d Division) Rank() int {
	return slices.Index(Divisions, d)
}

// BadgeType identifies a badge definition.
type BadgeType string

const (
	BadgeHatTrick          BadgeType = "HAT_TRICK"
	BadgeParedao           BadgeType = "PAREDAO"
	BadgeArtilheiroMes     BadgeType = "ARTILHEIRO_MES"
	BadgeFominha           BadgeType = "FOMINHA"
	BadgeStreak7           BadgeType = "STREAK_7"
	BadgeStreak30          BadgeType = "STREAK_30"
	BadgeOrganizadorMaster BadgeType = "ORGANIZADOR_MASTER"
	BadgeInfluencer        BadgeType = "INFLUENCER"
	BadgeLenda             BadgeType = "LENDA"
	BadgeFaixaPreta        BadgeType = "FAIXA_PRETA"
	BadgeMito              BadgeType = "MITO"
)

var badgeTypes = []BadgeType{
	BadgeHatTrick,
	BadgeParedao,
	BadgeArtilheiroMes,
	BadgeFominha,
	BadgeStreak7,
	BadgeStreak30,
	BadgeOrganizadorMaster,
	BadgeInfluencer,
	BadgeLenda,
	BadgeFaixaPreta,
	BadgeMito,
}

func ParseBadgeType(raw string) (BadgeType, error) {
	return parseEnum(raw, badgeTypes, ErrUnknownBadge)
}

func (b *BadgeType) UnmarshalText(raw []byte) error {
	v, err := ParseBadgeType(string(raw))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// BadgeRarity groups badges for display.
type BadgeRarity string

const (
	RarityComum    BadgeRarity = "COMUM"
	RarityRaro     BadgeRarity = "RARO"
	RarityEpico    BadgeRarity = "EPICO"
	RarityLendario BadgeRarity = "LENDARIO"
)

func parseEnum[T ~string](raw string, valid []T, sentinel error) (T, error) {
	v := T(strings.TrimSpace(raw))
	if slices.Contains(valid, v) {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("%w: %q", sentinel, raw)
}
