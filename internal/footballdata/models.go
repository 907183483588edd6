package footballdata

import "time"

// Stage values used by the v4 competitions API.
const (
	StageGroup = "GROUP_STAGE"
)

// StatusFinished marks a match whose full-time score is available.
const StatusFinished = "FINISHED"

type Team struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	TLA  string `json:"tla"`
}

type ScoreLine struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type Score struct {
	Winner   string    `json:"winner"`
	FullTime ScoreLine `json:"fullTime"`
}

type Match struct {
	ID       int       `json:"id"`
	UTCDate  time.Time `json:"utcDate"`
	Status   string    `json:"status"`
	Stage    string    `json:"stage"`
	Group    string    `json:"group"`
	HomeTeam Team      `json:"homeTeam"`
	AwayTeam Team      `json:"awayTeam"`
	Score    Score     `json:"score"`
}

type MatchesResponse struct {
	Matches []Match `json:"matches"`
}

type TableEntry struct {
	Position int  `json:"position"`
	Team     Team `json:"team"`
	Played   int  `json:"playedGames"`
	Points   int  `json:"points"`
}

type Standing struct {
	Stage string       `json:"stage"`
	Group string       `json:"group"`
	Table []TableEntry `json:"table"`
}

type StandingsResponse struct {
	Standings []Standing `json:"standings"`
}
