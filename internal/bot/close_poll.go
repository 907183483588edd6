package bot

import (
	"fmt"
	"log"

	"github.com/ForgiaDev/mondialito/internal/constants"
)

// CloseMatchPoll stops a match's poll at kickoff and freezes its bets.
// Closing an already closed poll is a no-op, so a re-fired or re-scheduled
// close neither duplicates bets nor re-announces.
func (b *Bot) CloseMatchPoll(matchID uint) error {
	p, err := b.store.PollByMatch(matchID)
	if err != nil {
		return err
	}
	if p.Closed {
		log.Printf("⚠️ Poll %s is already closed, skipping", p.PollID)
		return nil
	}

	m, err := b.store.GetMatch(matchID)
	if err != nil {
		return err
	}

	if err := b.gw.StopPoll(p.ChatID, p.MessageID); err != nil {
		return fmt.Errorf("failed to stop poll %s: %w", p.PollID, err)
	}
	if err := b.store.ClosePoll(p.PollID); err != nil {
		return err
	}
	log.Printf("🛑 Poll %s closed for match %d", p.PollID, matchID)

	text := fmt.Sprintf("%s: The match %s - %s has started! Poll closed!",
		constants.AlertEmote, m.Team1, m.Team2)
	return b.gw.SendText(b.chatID, text)
}
