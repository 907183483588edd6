package constants

// Emotes used in group messages.
const (
	FireEmote       = "\U0001F525"
	CryEmote        = "\U0001F62D"
	AlertEmote      = "\U000026A0"
	WarningMark     = "\U000026A0"
	ExclamationMark = "\U00002757"
)

// Poll option set for match outcome predictions: home win, draw, away win.
var PollOptions = []string{"1", "X", "2"}

// PointsCorrectPick is awarded for predicting the right outcome category.
const PointsCorrectPick = 3

const (
	MsgStart          = "I'm a bot, please talk to me!"
	MsgUnknownCommand = "Sorry, I didn't understand that command."
	MsgNoMatches      = "No matches today! " + CryEmote
	MsgHelp           = `Available commands:
/start — say hello
/sendmessage <text> — broadcast text to the group chat
/newmatch
<team1>
<team2>
<YYYY-MM-DD HH:MM> — register a match
/deletematch <match_id> — remove a match and its poll
/results
<match_id>
<result> — record the final result (1, X, 2 or a score like 2-1)
/leaderboard — current standings of the pool
/standings — tournament group tables
/matchday — repost today's matches and polls`
)
