package bot

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ForgiaDev/mondialito/internal/constants"
	"github.com/ForgiaDev/mondialito/internal/db"
)

const matchTimeLayout = "2006-01-02 15:04"

// HandleMessage routes an incoming command. Replies with hints or errors go
// back to the chat the command came from; announcements go to the group chat.
func (b *Bot) HandleMessage(msg *tgbotapi.Message) {
	if !msg.IsCommand() {
		return
	}
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		b.reply(chatID, constants.MsgStart)
	case "help":
		b.reply(chatID, constants.MsgHelp)
	case "sendmessage":
		b.handleSendMessage(chatID, msg)
	case "newmatch":
		b.handleNewMatch(chatID, msg)
	case "deletematch":
		b.handleDeleteMatch(chatID, msg)
	case "results":
		b.handleResults(chatID, msg)
	case "leaderboard":
		if err := b.SendLeaderboard(); err != nil {
			log.Printf("❌ Failed to send leaderboard: %v", err)
		}
	case "standings":
		b.handleStandings(chatID)
	case "matchday":
		if err := b.PostMatchday(time.Now().In(b.loc)); err != nil {
			log.Printf("❌ Matchday post failed: %v", err)
			b.reply(chatID, "Could not post the matchday, check the logs.")
		}
	default:
		b.reply(chatID, constants.MsgUnknownCommand)
	}
}

func (b *Bot) reply(chatID int64, text string) {
	if err := b.gw.SendText(chatID, text); err != nil {
		log.Printf("❌ Failed to send reply: %v", err)
	}
}

// handleSendMessage broadcasts the command payload to the group chat.
func (b *Bot) handleSendMessage(chatID int64, msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.CommandArguments())
	if text == "" {
		b.reply(chatID, "Format: /sendmessage <text>")
		return
	}
	b.reply(b.chatID, text)
}

// handleNewMatch registers a match from a four-line command:
// /newmatch, team1, team2, "YYYY-MM-DD HH:MM".
func (b *Bot) handleNewMatch(chatID int64, msg *tgbotapi.Message) {
	lines := strings.Split(msg.Text, "\n")
	if len(lines) != 4 {
		b.reply(chatID, "Format:\n/newmatch\n<team1>\n<team2>\n<YYYY-MM-DD HH:MM>")
		return
	}
	team1 := strings.TrimSpace(lines[1])
	team2 := strings.TrimSpace(lines[2])
	if team1 == "" || team2 == "" {
		b.reply(chatID, "Both team names are required.")
		return
	}

	startTime, err := time.ParseInLocation(matchTimeLayout, strings.TrimSpace(lines[3]), b.loc)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("Could not read the kickoff time, use %s (e.g. 2024-06-14 21:00).", matchTimeLayout))
		return
	}

	m, err := b.store.CreateMatch(team1, team2, startTime)
	if err != nil {
		log.Printf("❌ Failed to create match: %v", err)
		b.reply(chatID, "Something went wrong while saving the match.")
		return
	}
	log.Printf("✅ Match %d registered: %s - %s at %s", m.ID, team1, team2, startTime.Format(matchTimeLayout))
	b.reply(chatID, fmt.Sprintf("Match %d registered: %s - %s on %s", m.ID, team1, team2, startTime.Format(matchTimeLayout)))
}

// handleDeleteMatch removes a match, its poll and bets, and cancels the
// pending poll close so nothing fires for it afterwards.
func (b *Bot) handleDeleteMatch(chatID int64, msg *tgbotapi.Message) {
	arg := strings.TrimSpace(msg.CommandArguments())
	matchID, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		b.reply(chatID, "Format: /deletematch <match_id>")
		return
	}

	if err := b.store.DeleteMatch(uint(matchID)); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			b.reply(chatID, fmt.Sprintf("Match %d does not exist.", matchID))
		} else {
			log.Printf("❌ Failed to delete match %d: %v", matchID, err)
			b.reply(chatID, "Something went wrong while deleting the match.")
		}
		return
	}
	b.sched.CancelMatch(uint(matchID))
	log.Printf("🗑 Match %d deleted", matchID)
	b.reply(chatID, fmt.Sprintf("Match %d deleted.", matchID))
}

// handleResults records a final result from a three-line command, settles the
// poll's bets, announces the result and posts the leaderboard.
func (b *Bot) handleResults(chatID int64, msg *tgbotapi.Message) {
	lines := strings.Split(msg.Text, "\n")
	if len(lines) != 3 {
		b.reply(chatID, "Format:\n/results\n<match_id>\n<result>")
		return
	}
	matchID, err := strconv.ParseUint(strings.TrimSpace(lines[1]), 10, 32)
	if err != nil {
		b.reply(chatID, "The match id must be a number.")
		return
	}
	result := strings.TrimSpace(lines[2])
	if _, err := OutcomeCategory(result); err != nil {
		b.reply(chatID, err.Error())
		return
	}

	m, err := b.store.GetMatch(uint(matchID))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			b.reply(chatID, fmt.Sprintf("Match %d does not exist.", matchID))
		} else {
			log.Printf("❌ Failed to load match %d: %v", matchID, err)
			b.reply(chatID, "Something went wrong while loading the match.")
		}
		return
	}

	// A result is only valid against frozen bets: an open poll is closed
	// first, so a late vote change can never desync the scores.
	p, err := b.store.PollByMatch(m.ID)
	switch {
	case err == nil && !p.Closed:
		if err := b.CloseMatchPoll(m.ID); err != nil {
			log.Printf("❌ Failed to close poll before result for match %d: %v", m.ID, err)
			b.reply(chatID, "The poll could not be closed, result not recorded.")
			return
		}
	case err != nil && !errors.Is(err, db.ErrNotFound):
		log.Printf("❌ Failed to look up poll for match %d: %v", m.ID, err)
		b.reply(chatID, "Something went wrong while loading the poll.")
		return
	}

	// Re-entry overwrites the previous result; scoring adjusts by the
	// difference, never double-counting.
	if err := b.store.SetResult(m.ID, result); err != nil {
		log.Printf("❌ Failed to store result for match %d: %v", m.ID, err)
		b.reply(chatID, "Something went wrong while saving the result.")
		return
	}
	if err := ApplyResult(b.store, m.ID); err != nil {
		log.Printf("❌ Failed to apply result for match %d: %v", m.ID, err)
		b.reply(chatID, "The result was saved but scoring failed, check the logs.")
		return
	}

	b.reply(chatID, fmt.Sprintf("Results added! for match %d", m.ID))
	b.reply(b.chatID, fmt.Sprintf("%s Final Result %s\n\n%s - %s: %s",
		constants.ExclamationMark, constants.ExclamationMark, m.Team1, m.Team2, result))

	if err := b.SendLeaderboard(); err != nil {
		log.Printf("❌ Failed to send leaderboard: %v", err)
	}
}

// handleStandings posts the current group tables as an image.
func (b *Bot) handleStandings(chatID int64) {
	if b.sports == nil || b.render == nil {
		b.reply(chatID, "Standings are not configured.")
		return
	}
	standings, err := b.sports.GetStandings()
	if err != nil {
		log.Printf("❌ Failed to fetch standings: %v", err)
		b.reply(chatID, "Could not fetch the standings right now.")
		return
	}
	img, err := b.render.Standings(standings)
	if err != nil {
		log.Printf("❌ Failed to render standings: %v", err)
		b.reply(chatID, "Could not render the standings image.")
		return
	}
	if err := b.gw.SendImage(b.chatID, "standings.png", img); err != nil {
		log.Printf("❌ Failed to send standings image: %v", err)
	}
}
