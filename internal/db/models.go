package db

import (
	"time"

	"gorm.io/gorm"
)

// ResultPending is the result value of a match whose outcome is not recorded yet.
const ResultPending = "Pending"

type Match struct {
	gorm.Model
	Team1     string
	Team2     string
	StartTime time.Time
	Result    string
}

type Poll struct {
	gorm.Model
	PollID    string `gorm:"uniqueIndex"`
	MatchID   uint   `gorm:"uniqueIndex"`
	ChatID    int64
	MessageID int
	Closed    bool
}

type Player struct {
	gorm.Model
	TelegramID int64 `gorm:"uniqueIndex"`
	Name       string
	Score      int
}

// Bet records one player's vote on one poll. Points holds the score delta
// already granted for this bet, so re-applying a result never double-counts.
type Bet struct {
	gorm.Model
	PlayerID int64  `gorm:"uniqueIndex:idx_player_poll"`
	PollID   string `gorm:"uniqueIndex:idx_player_poll"`
	BetValue string
	Points   int
}
