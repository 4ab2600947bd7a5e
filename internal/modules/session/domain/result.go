package domain

import (
	"fmt"
	"time"
)

type Result struct {
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

// FormatResult renders the block appended to the daily result log.
func FormatResult(r Result) string {
	return fmt.Sprintf(
		"%s\t%s\nCorrect answers: %d of %d\nQuestions answered: %d of %d\nSeconds used: %d of %d\n\n",
		r.Name, r.FinishedAt.Format(time.TimeOnly),
		r.Correct, r.Answered,
		r.Answered, r.Total,
		r.SecondsUsed, r.Budget,
	)
}

// LogFileName is the dated file a result is appended to.
func LogFileName(finishedAt time.Time) string {
	return finishedAt.Format(time.DateOnly) + ".txt"
}
