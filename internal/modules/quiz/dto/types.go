package dto

type QuestionOutput struct {
	Prompt  string
	Answers []string
	Correct int
}

type TestOutput struct {
	Path      string
	Questions []QuestionOutput
}

type DraftOutput struct {
	Path      string
	Questions []QuestionOutput
	Current   int
	Saved     bool
}

type EditOp string

const (
	EditAddQuestion    EditOp = "add-question"
	EditDeleteQuestion EditOp = "delete-question"
	EditSelect         EditOp = "select"
	EditSetPrompt      EditOp = "set-prompt"
	EditAddAnswer      EditOp = "add-answer"
	EditDeleteAnswer   EditOp = "delete-answer"
	EditSetAnswer      EditOp = "set-answer"
	EditMarkCorrect    EditOp = "mark-correct"
)

// EditInput describes one form mutation. Index is a 0-based question index
// for EditSelect and a 1-based answer position for answer ops.
type EditInput struct {
	Op    EditOp
	Index int
	Text  string
}

type ConvertInput struct {
	Source string
	Target string
}

type ConvertOutput struct {
	Target    string
	Questions int
}
