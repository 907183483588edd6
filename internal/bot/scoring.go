package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ForgiaDev/mondialito/internal/constants"
	"github.com/ForgiaDev/mondialito/internal/db"
)

// OutcomeCategory normalizes a result string to one of the poll options:
// "1" (home win), "X" (draw), "2" (away win). A full-time score such as
// "2-1" maps to its category.
func OutcomeCategory(result string) (string, error) {
	r := strings.ToUpper(strings.TrimSpace(result))
	switch r {
	case "1", "X", "2":
		return r, nil
	}

	parts := strings.Split(r, "-")
	if len(parts) == 2 {
		home, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		away, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err1 == nil && err2 == nil {
			switch {
			case home > away:
				return "1", nil
			case home < away:
				return "2", nil
			default:
				return "X", nil
			}
		}
	}

	return "", fmt.Errorf("unrecognized result %q: use 1, X, 2 or a score like 2-1", result)
}

// ApplyResult grants points for the bets on a match's poll. Each bet tracks
// the points it has already been granted, so the operation is a plain fold
// over the bets: re-applying the same result changes nothing, and applying a
// corrected result adjusts every player by the difference.
func ApplyResult(store *db.Store, matchID uint) error {
	m, err := store.GetMatch(matchID)
	if err != nil {
		return err
	}
	if m.Result == db.ResultPending {
		return fmt.Errorf("match %d has no result yet", matchID)
	}
	category, err := OutcomeCategory(m.Result)
	if err != nil {
		return err
	}

	p, err := store.PollByMatch(matchID)
	if errors.Is(err, db.ErrNotFound) {
		// a match without a poll has no bets to settle
		return nil
	}
	if err != nil {
		return err
	}

	bets, err := store.BetsForPoll(p.PollID)
	if err != nil {
		return err
	}

	for _, bet := range bets {
		points := 0
		if bet.BetValue == category {
			points = constants.PointsCorrectPick
		}
		delta := points - bet.Points
		if delta == 0 {
			continue
		}
		if err := store.AddPoints(bet.PlayerID, delta); err != nil {
			return err
		}
		if err := store.SetBetPoints(bet.ID, points); err != nil {
			return err
		}
	}
	return nil
}
