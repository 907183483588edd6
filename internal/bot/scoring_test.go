package bot

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ForgiaDev/mondialito/internal/db"
)

func newTestStore(t *testing.T) *db.Store {
	t.Helper()
	store, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	return store
}

func TestOutcomeCategory(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"1", "1", true},
		{"X", "X", true},
		{"x", "X", true},
		{"2", "2", true},
		{" 2 ", "2", true},
		{"2-1", "1", true},
		{"0-0", "X", true},
		{"1-3", "2", true},
		{"draw", "", false},
		{"2:1", "", false},
		{"", "", false},
	}

	for _, c := range cases {
		got, err := OutcomeCategory(c.in)
		if c.ok && err != nil {
			t.Errorf("OutcomeCategory(%q) unexpected error: %v", c.in, err)
		}
		if !c.ok && err == nil {
			t.Errorf("OutcomeCategory(%q) expected an error", c.in)
		}
		if got != c.want {
			t.Errorf("OutcomeCategory(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

// seedScoredMatch creates a match with a poll and one bet per option.
func seedScoredMatch(t *testing.T, store *db.Store) *db.Match {
	t.Helper()
	m, err := store.CreateMatch("Italy", "Spain", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("CreateMatch failed: %v", err)
	}
	if _, err := store.CreatePoll("poll-1", m.ID, -100, 1); err != nil {
		t.Fatalf("CreatePoll failed: %v", err)
	}
	for i, bet := range []string{"1", "X", "2"} {
		id := int64(i + 1)
		if _, err := store.CreatePlayer(id, string(rune('P'+i))); err != nil {
			t.Fatalf("CreatePlayer failed: %v", err)
		}
		if err := store.UpsertBet(id, "poll-1", bet); err != nil {
			t.Fatalf("UpsertBet failed: %v", err)
		}
	}
	return m
}

func scoreOf(t *testing.T, store *db.Store, telegramID int64) int {
	t.Helper()
	p, err := store.GetPlayer(telegramID)
	if err != nil {
		t.Fatalf("GetPlayer(%d) failed: %v", telegramID, err)
	}
	return p.Score
}

func TestApplyResultScoresWinners(t *testing.T) {
	store := newTestStore(t)
	m := seedScoredMatch(t, store)

	if err := store.SetResult(m.ID, "1"); err != nil {
		t.Fatalf("SetResult failed: %v", err)
	}
	if err := ApplyResult(store, m.ID); err != nil {
		t.Fatalf("ApplyResult failed: %v", err)
	}

	if got := scoreOf(t, store, 1); got != 3 {
		t.Errorf("Expected the home-win bettor to score 3, got %d", got)
	}
	if got := scoreOf(t, store, 2); got != 0 {
		t.Errorf("Expected the draw bettor to stay at 0, got %d", got)
	}
	if got := scoreOf(t, store, 3); got != 0 {
		t.Errorf("Expected the away-win bettor to stay at 0, got %d", got)
	}
}

func TestApplyResultIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	m := seedScoredMatch(t, store)

	store.SetResult(m.ID, "2-1")
	for i := 0; i < 3; i++ {
		if err := ApplyResult(store, m.ID); err != nil {
			t.Fatalf("ApplyResult run %d failed: %v", i, err)
		}
	}

	if got := scoreOf(t, store, 1); got != 3 {
		t.Errorf("Expected 3 points after repeated application, got %d", got)
	}
}

func TestApplyResultCorrectsOverwrittenResult(t *testing.T) {
	store := newTestStore(t)
	m := seedScoredMatch(t, store)

	store.SetResult(m.ID, "1")
	if err := ApplyResult(store, m.ID); err != nil {
		t.Fatalf("ApplyResult failed: %v", err)
	}

	// the operator corrects the result to a draw
	store.SetResult(m.ID, "X")
	if err := ApplyResult(store, m.ID); err != nil {
		t.Fatalf("ApplyResult after correction failed: %v", err)
	}

	if got := scoreOf(t, store, 1); got != 0 {
		t.Errorf("Expected the wrongly granted points to be taken back, got %d", got)
	}
	if got := scoreOf(t, store, 2); got != 3 {
		t.Errorf("Expected the draw bettor to score 3 after correction, got %d", got)
	}
}

func TestApplyResultWithoutResult(t *testing.T) {
	store := newTestStore(t)
	m := seedScoredMatch(t, store)

	if err := ApplyResult(store, m.ID); err == nil {
		t.Error("Expected an error for a match without a result")
	}
}

func TestApplyResultWithoutPoll(t *testing.T) {
	store := newTestStore(t)
	m, _ := store.CreateMatch("Georgia", "Portugal", time.Now().Add(time.Hour))
	store.SetResult(m.ID, "2")

	if err := ApplyResult(store, m.ID); err != nil {
		t.Errorf("Expected a match without a poll to settle as a no-op, got %v", err)
	}
}
