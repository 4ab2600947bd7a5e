package dto

import "time"

type ItemOutput struct {
	Prompt  string
	Choices []string
}

// SnapshotOutput is everything the player screen renders.
type SnapshotOutput struct {
	SessionID   string
	Name        string
	TestPath    string
	State       string
	Item        ItemOutput
	HasItem     bool
	Current     int
	Remaining   int
	Total       int
	TimeLeft    int
	PerQuestion int
	Budget      int
	Correct     int
	Answered    int
	Expired     bool
	Result      *ResultOutput
}

type AnswerOutput struct {
	Hit      bool
	Snapshot SnapshotOutput
}

type TickOutput struct {
	Continue bool
	Snapshot SnapshotOutput
}

type ResultOutput struct {
	SessionID   string
	Name        string
	TestPath    string
	FinishedAt  time.Time
	Correct     int
	Answered    int
	Total       int
	SecondsUsed int
	Budget      int
	Expired     bool
	LogPath     string
}
