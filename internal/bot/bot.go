package bot

import (
	"log"
	"time"

	"github.com/ForgiaDev/mondialito/internal/db"
	"github.com/ForgiaDev/mondialito/internal/footballdata"
)

// SportsProvider is the slice of the football-data client the bot consumes.
type SportsProvider interface {
	GetStandings() (*footballdata.StandingsResponse, error)
	MatchesOn(day time.Time) ([]footballdata.Match, error)
}

// ImageRenderer draws the calendar and standings graphics.
type ImageRenderer interface {
	Matchday(day time.Time, matches []footballdata.Match) ([]byte, error)
	Standings(standings *footballdata.StandingsResponse) ([]byte, error)
}

// Bot wires the gateway, the store, the scheduler and the data provider
// together. All state it touches lives in the store; there are no globals.
type Bot struct {
	gw     Gateway
	store  *db.Store
	sched  *Scheduler
	sports SportsProvider
	render ImageRenderer
	chatID int64
	loc    *time.Location
}

func New(gw Gateway, store *db.Store, sched *Scheduler, sports SportsProvider, render ImageRenderer, chatID int64, loc *time.Location) *Bot {
	if loc == nil {
		loc = time.Local
	}
	return &Bot{
		gw:     gw,
		store:  store,
		sched:  sched,
		sports: sports,
		render: render,
		chatID: chatID,
		loc:    loc,
	}
}

// Dispatch runs one scheduled task. Failures are logged and the task is not
// retried; the operator re-triggers via /matchday or /leaderboard.
func (b *Bot) Dispatch(t Task) {
	var err error
	switch t.Kind {
	case TaskClosePoll:
		err = b.CloseMatchPoll(t.MatchID)
	case TaskMatchday:
		err = b.PostMatchday(time.Now().In(b.loc))
	case TaskLeaderboard:
		err = b.SendLeaderboard()
	}
	if err != nil {
		log.Printf("❌ Scheduled task failed (kind=%s match=%d): %v", t.Kind, t.MatchID, err)
	}
}
