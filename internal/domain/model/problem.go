package model

type ProblemDifficulty string

const (
	DifficultyEasy   ProblemDifficulty = "Easy"
	DifficultyMedium ProblemDifficulty = "Medium"
	DifficultyHard   ProblemDifficulty = "Hard"
)

type TestCase struct {
	ID          int64   `json:"id"`
	ProblemID   int64   `json:"problem_id"`
	Input       string  `json:"input"`
	Output      string  `json:"output"`
	Explanation *string `json:"explanation,omitempty"`
}

// StarterCode is the per-language editor payload for a problem. LogicCode is the
// harness and is stripped for user-role callers before it leaves the service.
type StarterCode struct {
	LanguageID int64  `json:"language_id"`
	Name       string `json:"name"`
	Version    string `json:"version"`
	UserCode   string `json:"user_code"`
	LogicCode  string `json:"logic_code,omitempty"`
}
