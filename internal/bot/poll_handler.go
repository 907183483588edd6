package bot

import (
	"errors"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ForgiaDev/mondialito/internal/constants"
	"github.com/ForgiaDev/mondialito/internal/db"
)

// HandlePollAnswer records a vote as a bet. The player is created on their
// first vote; voting again replaces the previous bet; an empty answer
// retracts it. Answers for closed polls are ignored.
func (b *Bot) HandlePollAnswer(answer *tgbotapi.PollAnswer) {
	pollID := answer.PollID
	userID := answer.User.ID
	userName := answer.User.UserName
	if userName == "" {
		userName = strings.TrimSpace(answer.User.FirstName + " " + answer.User.LastName)
	}

	p, err := b.store.PollByID(pollID)
	if err != nil {
		log.Printf("⚠️ Vote for unknown poll %s, ignoring", pollID)
		return
	}
	if p.Closed {
		log.Printf("⚠️ Poll %s is already closed, ignoring vote from %s", pollID, userName)
		return
	}

	if _, err := b.store.GetPlayer(userID); errors.Is(err, db.ErrNotFound) {
		if _, err := b.store.CreatePlayer(userID, userName); err != nil {
			log.Printf("❌ Failed to create player %d: %v", userID, err)
			return
		}
		log.Printf("✅ Player %s (ID=%d) joined the pool", userName, userID)
	} else if err != nil {
		log.Printf("❌ Failed to look up player %d: %v", userID, err)
		return
	}

	// Telegram sends an empty option list when a vote is retracted.
	if len(answer.OptionIDs) == 0 {
		if err := b.store.DeleteBet(userID, pollID); err != nil {
			log.Printf("❌ Failed to retract bet of %d on %s: %v", userID, pollID, err)
		}
		return
	}

	optionID := answer.OptionIDs[0]
	if optionID < 0 || optionID >= len(constants.PollOptions) {
		log.Printf("⚠️ Vote with out-of-range option %d on poll %s", optionID, pollID)
		return
	}
	betValue := constants.PollOptions[optionID]

	if err := b.store.UpsertBet(userID, pollID, betValue); err != nil {
		log.Printf("❌ Failed to record bet: %v", err)
		return
	}
	log.Printf("✅ %s (ID=%d) bet %q on poll %s", userName, userID, betValue, pollID)
}
