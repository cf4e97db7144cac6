package model

type ExecutionMode string

const (
	ModeRun    ExecutionMode = "run"
	ModeSubmit ExecutionMode = "submit"
)

// ExecutionResult is the per-test-case verdict. Run mode carries the full diff
// so the solver can debug; submit mode carries only id/success/error so hidden
// expected outputs never leak.
type ExecutionResult struct {
	TestCaseID     int64  `json:"testCaseId"`
	Input          string `json:"input,omitempty"`
	ExpectedOutput string `json:"expectedOutput,omitempty"`
	ActualOutput   string `json:"actualOutput,omitempty"`
	Success        bool   `json:"success"`
	Error          string `json:"error,omitempty"`
}

// StandardError carries the first failing test case's diagnostics for a request.
type StandardError struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
