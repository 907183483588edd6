package db

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when an operation would violate an invariant,
	// such as betting twice on the same poll or betting on a closed poll.
	ErrConflict = errors.New("conflict")
)

// Store is the single handle to the betting-pool database. It is passed
// explicitly to everything that needs it; there is no package-level state.
type Store struct {
	conn *gorm.DB
}

/* Matches */

func (s *Store) CreateMatch(team1, team2 string, startTime time.Time) (*Match, error) {
	m := Match{Team1: team1, Team2: team2, StartTime: startTime, Result: ResultPending}
	if err := s.conn.Create(&m).Error; err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return &m, nil
}

func (s *Store) GetMatch(matchID uint) (*Match, error) {
	var m Match
	if err := s.conn.First(&m, matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("match %d: %w", matchID, ErrNotFound)
		}
		return nil, err
	}
	return &m, nil
}

// MatchesOn returns the matches whose kickoff falls on the same calendar day
// as day, in kickoff order. Day bounds are taken in day's location.
func (s *Store) MatchesOn(day time.Time) ([]Match, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var matches []Match
	err := s.conn.Where("start_time >= ? AND start_time < ?", start, end).
		Order("start_time ASC").
		Find(&matches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

func (s *Store) SetResult(matchID uint, result string) error {
	m, err := s.GetMatch(matchID)
	if err != nil {
		return err
	}
	m.Result = result
	return s.conn.Save(m).Error
}

// DeleteMatch removes a match together with its poll and that poll's bets.
func (s *Store) DeleteMatch(matchID uint) error {
	m, err := s.GetMatch(matchID)
	if err != nil {
		return err
	}

	var p Poll
	err = s.conn.Where("match_id = ?", matchID).First(&p).Error
	switch {
	case err == nil:
		if err := s.conn.Where("poll_id = ?", p.PollID).Unscoped().Delete(&Bet{}).Error; err != nil {
			return fmt.Errorf("failed to delete bets for match %d: %w", matchID, err)
		}
		if err := s.conn.Unscoped().Delete(&p).Error; err != nil {
			return fmt.Errorf("failed to delete poll for match %d: %w", matchID, err)
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}

	return s.conn.Unscoped().Delete(m).Error
}

/* Polls */

func (s *Store) CreatePoll(pollID string, matchID uint, chatID int64, messageID int) (*Poll, error) {
	if _, err := s.GetMatch(matchID); err != nil {
		return nil, err
	}
	p := Poll{PollID: pollID, MatchID: matchID, ChatID: chatID, MessageID: messageID}
	if err := s.conn.Create(&p).Error; err != nil {
		return nil, fmt.Errorf("failed to create poll: %w", err)
	}
	return &p, nil
}

func (s *Store) PollByID(pollID string) (*Poll, error) {
	var p Poll
	if err := s.conn.Where("poll_id = ?", pollID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("poll %s: %w", pollID, ErrNotFound)
		}
		return nil, err
	}
	return &p, nil
}

func (s *Store) PollByMatch(matchID uint) (*Poll, error) {
	var p Poll
	if err := s.conn.Where("match_id = ?", matchID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("poll for match %d: %w", matchID, ErrNotFound)
		}
		return nil, err
	}
	return &p, nil
}

// ClosePoll marks a poll closed. Closed is monotonic: closing an already
// closed poll leaves it closed.
func (s *Store) ClosePoll(pollID string) error {
	p, err := s.PollByID(pollID)
	if err != nil {
		return err
	}
	p.Closed = true
	return s.conn.Save(p).Error
}

/* Players */

func (s *Store) GetPlayer(telegramID int64) (*Player, error) {
	var pl Player
	if err := s.conn.Where("telegram_id = ?", telegramID).First(&pl).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("player %d: %w", telegramID, ErrNotFound)
		}
		return nil, err
	}
	return &pl, nil
}

// CreatePlayer registers a player with the first observed display name and a
// zero score.
func (s *Store) CreatePlayer(telegramID int64, name string) (*Player, error) {
	pl := Player{TelegramID: telegramID, Name: name, Score: 0}
	if err := s.conn.Create(&pl).Error; err != nil {
		return nil, fmt.Errorf("failed to create player %d: %w", telegramID, err)
	}
	return &pl, nil
}

func (s *Store) AddPoints(telegramID int64, points int) error {
	pl, err := s.GetPlayer(telegramID)
	if err != nil {
		return err
	}
	pl.Score += points
	return s.conn.Save(pl).Error
}

// Leaderboard returns all players ordered by score descending. Ties keep
// insertion order, so repeated calls are stable.
func (s *Store) Leaderboard() ([]Player, error) {
	var players []Player
	if err := s.conn.Order("score DESC, id ASC").Find(&players).Error; err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	return players, nil
}

/* Bets */

// UpsertBet records a player's vote on an open poll, replacing any previous
// vote by the same player on the same poll. Voting on a closed poll is a
// conflict.
func (s *Store) UpsertBet(telegramID int64, pollID, betValue string) error {
	p, err := s.PollByID(pollID)
	if err != nil {
		return err
	}
	if p.Closed {
		return fmt.Errorf("poll %s is closed: %w", pollID, ErrConflict)
	}
	if _, err := s.GetPlayer(telegramID); err != nil {
		return err
	}

	var b Bet
	err = s.conn.Where("player_id = ? AND poll_id = ?", telegramID, pollID).First(&b).Error
	switch {
	case err == nil:
		b.BetValue = betValue
		return s.conn.Save(&b).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.conn.Create(&Bet{PlayerID: telegramID, PollID: pollID, BetValue: betValue}).Error
	default:
		return err
	}
}

// DeleteBet removes a player's vote from an open poll (vote retraction).
func (s *Store) DeleteBet(telegramID int64, pollID string) error {
	p, err := s.PollByID(pollID)
	if err != nil {
		return err
	}
	if p.Closed {
		return fmt.Errorf("poll %s is closed: %w", pollID, ErrConflict)
	}
	return s.conn.Where("player_id = ? AND poll_id = ?", telegramID, pollID).
		Unscoped().Delete(&Bet{}).Error
}

func (s *Store) BetsForPoll(pollID string) ([]Bet, error) {
	var bets []Bet
	err := s.conn.Where("poll_id = ?", pollID).Order("created_at ASC").Find(&bets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load bets for poll %s: %w", pollID, err)
	}
	return bets, nil
}

// SetBetPoints records how many points a bet has been granted so far.
func (s *Store) SetBetPoints(betID uint, points int) error {
	return s.conn.Model(&Bet{}).Where("id = ?", betID).Update("points", points).Error
}
