package domain

import "time"

// Game is a scheduled pickup match.
type Game struct {
	ID                string     `json:"id"`
	Status            GameStatus `json:"status"`
	OwnerID           string     `json:"owner_id"`
	ScheduleID        *string    `json:"schedule_id,omitempty"`
	GroupID           *string    `json:"group_id,omitempty"`
	Date              time.Time  `json:"date"`
	Team1ID           *string    `json:"team1_id,omitempty"`
	Team2ID           *string    `json:"team2_id,omitempty"`
	Team1Score        int        `json:"team1_score"`
	Team2Score        int        `json:"team2_score"`
	MVPID             *string    `json:"mvp_id,omitempty"`
	WorstPlayerID     *string    `json:"worst_player_id,omitempty"`
	Processed         bool       `json:"processed"`
	ProcessedAt       *time.Time `json:"processed_at,omitempty"`
	ActivityGenerated bool       `json:"activity_generated"`
	DeletedAt         *time.Time `json:"deleted_at,omitempty"`
	DeletedBy         *string    `json:"deleted_by,omitempty"`
	DeletionReason    *string    `json:"deletion_reason,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// IsDeleted reports whether the game carries a soft-delete marker.
func (g *Game) IsDeleted() bool {
	return g.DeletedAt != nil
}

// IsMVP reports whether userID was voted best player of the game.
func (g *Game) IsMVP(userID string) bool {
	return g.MVPID != nil && *g.MVPID == userID
}

// IsWorst reports whether userID was voted worst player of the game.
func (g *Game) IsWorst(userID string) bool {
	return g.WorstPlayerID != nil && *g.WorstPlayerID == userID
}

// GameUpdate is the before/after pair delivered by the change trigger.
type GameUpdate struct {
	Before *Game `json:"before"`
	After  *Game `json:"after" validate:"required"`
}

// ShouldFinalize reports whether this update is the transition into FINISHED.
func (u GameUpdate) ShouldFinalize() bool {
	if u.After == nil || u.After.Status != GameStatusFinished {
		return false
	}
	return u.Before == nil || u.Before.Status != GameStatusFinished
}

// Confirmation is a player's attendance record for one game, including the
// per-game event counts reported during the match.
type Confirmation struct {
	GameID        string             `json:"game_id"`
	UserID        string             `json:"user_id"`
	UserName      string             `json:"user_name"`
	Status        ConfirmationStatus `json:"status"`
	Position      Position           `json:"position"`
	IsCasual      bool               `json:"is_casual"`
	PaymentStatus PaymentStatus      `json:"payment_status"`
	Goals         int                `json:"goals"`
	Assists       int                `json:"assists"`
	Saves         int                `json:"saves"`
	YellowCards   int                `json:"yellow_cards"`
	RedCards      int                `json:"red_cards"`
	XPEarned      *int64             `json:"xp_earned,omitempty"`
}

// Team is one side of a game.
type Team struct {
	ID        string   `json:"id"`
	GameID    string   `json:"game_id"`
	Name      string   `json:"name"`
	PlayerIDs []string `json:"player_ids"`
	Score     int      `json:"score"`
}

// HasPlayer reports whether userID is on the roster.
func (t *Team) HasPlayer(userID string) bool {
	for _, id := range t.PlayerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// LiveScore is the score reported while the game was being played. When present
// it is authoritative over the team documents.
type LiveScore struct {
	GameID     string      `json:"game_id"`
	Team1ID    string      `json:"team1_id"`
	Team2ID    string      `json:"team2_id"`
	Team1Score int         `json:"team1_score"`
	Team2Score int         `json:"team2_score"`
	Events     []LiveEvent `json:"events,omitempty"`
}

// LiveEvent is a single entry of the live score log.
type LiveEvent struct {
	Type      string    `json:"type"`
	TeamID    string    `json:"team_id"`
	PlayerID  string    `json:"player_id"`
	Minute    int       `json:"minute"`
	CreatedAt time.Time `json:"created_at"`
}

// PlayerGameOutcome is the derived per-player result of one finished game.
// It is computed during finalization and never stored as its own record.
type PlayerGameOutcome struct {
	UserID       string
	Position     Position
	TeamID       string
	Goals        int
	Assists      int
	Saves        int
	YellowCards  int
	RedCards     int
	Result       TeamResult
	GoalsFor     int
	GoalsAgainst int
	WasMVP       bool
	WasWorst     bool
}

// GoalDiff is the team goal difference from this player's side.
func (o PlayerGameOutcome) GoalDiff() int {
	return o.GoalsFor - o.GoalsAgainst
}

// CleanSheet reports whether the player's team conceded no goals.
func (o PlayerGameOutcome) CleanSheet() bool {
	return o.TeamID != "" && o.GoalsAgainst == 0
}
