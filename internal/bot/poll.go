package bot

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ForgiaDev/mondialito/internal/constants"
	"github.com/ForgiaDev/mondialito/internal/db"
	"github.com/ForgiaDev/mondialito/internal/footballdata"
)

// PostMatchday is the daily tick: it announces the day's fixtures, opens one
// poll per match and schedules the poll closings. The images go out before
// close scheduling re-reads the store.
func (b *Bot) PostMatchday(day time.Time) error {
	matches, err := b.store.MatchesOn(day)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return b.gw.SendText(b.chatID, constants.MsgNoMatches)
	}

	if err := b.postCalendarImages(day); err != nil {
		return err
	}

	for i := range matches {
		if err := b.openMatchPoll(&matches[i]); err != nil {
			return err
		}
	}

	return b.scheduleCloses(day)
}

// postCalendarImages sends the standings image (while the tournament is in
// the group stage) followed by the matchday calendar.
func (b *Bot) postCalendarImages(day time.Time) error {
	if b.sports == nil || b.render == nil {
		return nil
	}

	fixtures, err := b.sports.MatchesOn(day)
	if err != nil {
		return fmt.Errorf("failed to fetch fixtures: %w", err)
	}
	if len(fixtures) == 0 {
		return nil
	}

	if fixtures[0].Stage == footballdata.StageGroup {
		standings, err := b.sports.GetStandings()
		if err != nil {
			return fmt.Errorf("failed to fetch standings: %w", err)
		}
		img, err := b.render.Standings(standings)
		if err != nil {
			return err
		}
		if err := b.gw.SendImage(b.chatID, "standings.png", img); err != nil {
			return err
		}
	}

	img, err := b.render.Matchday(day, fixtures)
	if err != nil {
		return err
	}
	return b.gw.SendImage(b.chatID, "matchday.png", img)
}

// openMatchPoll creates the outcome poll for a match that does not have one
// yet and records the returned poll id.
func (b *Bot) openMatchPoll(m *db.Match) error {
	_, err := b.store.PollByMatch(m.ID)
	if err == nil {
		// already open or later
		return nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return err
	}

	question := fmt.Sprintf("%s - %s (%s): who wins?",
		m.Team1, m.Team2, m.StartTime.In(b.loc).Format("15:04"))
	pollID, messageID, err := b.gw.CreatePoll(b.chatID, question, constants.PollOptions)
	if err != nil {
		return fmt.Errorf("failed to open poll for match %d: %w", m.ID, err)
	}

	if _, err := b.store.CreatePoll(pollID, m.ID, b.chatID, messageID); err != nil {
		return err
	}
	log.Printf("✅ Poll %s opened for match %d (%s - %s)", pollID, m.ID, m.Team1, m.Team2)
	return nil
}

// scheduleCloses arms one close task per open poll with a future kickoff.
// Matches already scheduled, already started or without a poll are skipped.
func (b *Bot) scheduleCloses(day time.Time) error {
	matches, err := b.store.MatchesOn(day)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, m := range matches {
		if !m.StartTime.After(now) {
			continue
		}
		p, err := b.store.PollByMatch(m.ID)
		if errors.Is(err, db.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if p.Closed || b.sched.HasClose(m.ID) {
			continue
		}
		b.sched.Add(Task{FireAt: m.StartTime, MatchID: m.ID, Kind: TaskClosePoll})
		log.Printf("⏰ Poll close scheduled for match %d at %s", m.ID, m.StartTime.Format("15:04"))
	}
	return nil
}
