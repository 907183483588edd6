package bot

import (
	"fmt"
	"strings"

	"github.com/ForgiaDev/mondialito/internal/constants"
)

// SendLeaderboard posts the players ordered by score to the group chat.
func (b *Bot) SendLeaderboard() error {
	players, err := b.store.Leaderboard()
	if err != nil {
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s LEADERBOARD %s\n\n", constants.WarningMark, constants.WarningMark)
	for _, p := range players {
		fmt.Fprintf(&sb, "%s: %d\n", p.Name, p.Score)
	}

	return b.gw.SendText(b.chatID, sb.String())
}
