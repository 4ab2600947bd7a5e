package dto

type SettingsOutput struct {
	TimePerQuestion int
	ResultsDir      string
	File            string
}

type SaveInput struct {
	TimePerQuestion int
	ResultsDir      string
}

// UpdateInput changes only the fields that are set.
type UpdateInput struct {
	TimePerQuestion *int
	ResultsDir      *string
}
