package db

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	return store
}

func TestCreateAndGetMatch(t *testing.T) {
	store := newTestStore(t)

	kickoff := time.Date(2024, 6, 14, 21, 0, 0, 0, time.UTC)
	m, err := store.CreateMatch("Germany", "Scotland", kickoff)
	if err != nil {
		t.Fatalf("CreateMatch failed: %v", err)
	}
	if m.ID == 0 {
		t.Error("Expected a match id to be assigned")
	}
	if m.Result != ResultPending {
		t.Errorf("Expected result %q, got %q", ResultPending, m.Result)
	}

	got, err := store.GetMatch(m.ID)
	if err != nil {
		t.Fatalf("GetMatch failed: %v", err)
	}
	if got.Team1 != "Germany" || got.Team2 != "Scotland" {
		t.Errorf("Unexpected teams: %s - %s", got.Team1, got.Team2)
	}
	if !got.StartTime.Equal(kickoff) {
		t.Errorf("Expected kickoff %v, got %v", kickoff, got.StartTime)
	}

	if _, err := store.GetMatch(999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown match, got %v", err)
	}
}

func TestMatchesOn(t *testing.T) {
	store := newTestStore(t)

	day := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	late, _ := store.CreateMatch("Spain", "Croatia", day.Add(20*time.Hour))
	early, _ := store.CreateMatch("Hungary", "Switzerland", day.Add(14*time.Hour))
	store.CreateMatch("Italy", "Albania", day.Add(38*time.Hour)) // next day

	matches, err := store.MatchesOn(day)
	if err != nil {
		t.Fatalf("MatchesOn failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}
	if matches[0].ID != early.ID || matches[1].ID != late.ID {
		t.Errorf("Expected kickoff order %d, %d, got %d, %d",
			early.ID, late.ID, matches[0].ID, matches[1].ID)
	}
}

func TestDeleteMatchCascades(t *testing.T) {
	store := newTestStore(t)

	m, _ := store.CreateMatch("France", "Austria", time.Now().Add(time.Hour))
	if _, err := store.CreatePoll("poll-1", m.ID, -100, 42); err != nil {
		t.Fatalf("CreatePoll failed: %v", err)
	}
	store.CreatePlayer(7, "alice")
	if err := store.UpsertBet(7, "poll-1", "1"); err != nil {
		t.Fatalf("UpsertBet failed: %v", err)
	}

	if err := store.DeleteMatch(m.ID); err != nil {
		t.Fatalf("DeleteMatch failed: %v", err)
	}

	if _, err := store.GetMatch(m.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected match to be gone, got %v", err)
	}
	if _, err := store.PollByID("poll-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected poll to be gone, got %v", err)
	}
	bets, _ := store.BetsForPoll("poll-1")
	if len(bets) != 0 {
		t.Errorf("Expected bets to be gone, got %d", len(bets))
	}

	matches, _ := store.MatchesOn(time.Now())
	for _, got := range matches {
		if got.ID == m.ID {
			t.Error("Deleted match still listed")
		}
	}

	if err := store.DeleteMatch(m.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestCreatePollRequiresMatch(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.CreatePoll("poll-x", 123, -100, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for poll on unknown match, got %v", err)
	}
}

func TestUpsertBetOnePerPlayerPerPoll(t *testing.T) {
	store := newTestStore(t)

	m, _ := store.CreateMatch("England", "Serbia", time.Now().Add(time.Hour))
	store.CreatePoll("poll-1", m.ID, -100, 1)
	store.CreatePlayer(7, "alice")

	if err := store.UpsertBet(7, "poll-1", "1"); err != nil {
		t.Fatalf("First bet failed: %v", err)
	}
	if err := store.UpsertBet(7, "poll-1", "X"); err != nil {
		t.Fatalf("Re-vote failed: %v", err)
	}

	bets, err := store.BetsForPoll("poll-1")
	if err != nil {
		t.Fatalf("BetsForPoll failed: %v", err)
	}
	if len(bets) != 1 {
		t.Fatalf("Expected exactly one bet per player per poll, got %d", len(bets))
	}
	if bets[0].BetValue != "X" {
		t.Errorf("Expected the re-vote to win, got %q", bets[0].BetValue)
	}
}

func TestBetOnClosedPollIsConflict(t *testing.T) {
	store := newTestStore(t)

	m, _ := store.CreateMatch("Poland", "Netherlands", time.Now().Add(time.Hour))
	store.CreatePoll("poll-1", m.ID, -100, 1)
	store.CreatePlayer(7, "alice")
	store.CreatePlayer(8, "bob")
	store.UpsertBet(7, "poll-1", "2")

	if err := store.ClosePoll("poll-1"); err != nil {
		t.Fatalf("ClosePoll failed: %v", err)
	}

	if err := store.UpsertBet(8, "poll-1", "1"); !errors.Is(err, ErrConflict) {
		t.Errorf("Expected ErrConflict for bet on closed poll, got %v", err)
	}
	if err := store.DeleteBet(7, "poll-1"); !errors.Is(err, ErrConflict) {
		t.Errorf("Expected ErrConflict for retraction on closed poll, got %v", err)
	}

	// closing again keeps the poll closed
	if err := store.ClosePoll("poll-1"); err != nil {
		t.Fatalf("Second ClosePoll failed: %v", err)
	}
	p, _ := store.PollByID("poll-1")
	if !p.Closed {
		t.Error("Expected poll to stay closed")
	}
}

func TestLeaderboardOrderIsStable(t *testing.T) {
	store := newTestStore(t)

	store.CreatePlayer(1, "A")
	store.CreatePlayer(2, "B")
	store.CreatePlayer(3, "C")
	store.AddPoints(1, 30)
	store.AddPoints(2, 50)
	store.AddPoints(3, 50)

	first, err := store.Leaderboard()
	if err != nil {
		t.Fatalf("Leaderboard failed: %v", err)
	}
	if len(first) != 3 {
		t.Fatalf("Expected 3 players, got %d", len(first))
	}
	if first[0].Score != 50 || first[1].Score != 50 || first[2].Name != "A" {
		t.Errorf("Expected the tied players first and A last, got %v", first)
	}

	for i := 0; i < 5; i++ {
		again, _ := store.Leaderboard()
		for j := range first {
			if again[j].TelegramID != first[j].TelegramID {
				t.Fatalf("Tie order changed between calls: %v vs %v", first, again)
			}
		}
	}
}

func TestAddPointsUnknownPlayer(t *testing.T) {
	store := newTestStore(t)

	if err := store.AddPoints(404, 3); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
