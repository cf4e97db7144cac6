package service

import (
	"context"
	"fmt"
	"strings"

	"algojudge/internal/common"
	"algojudge/internal/domain/model"
	"algojudge/internal/domain/repository"
	"algojudge/internal/judge/sandbox"

	"go.uber.org/zap"
)

// SandboxEngine is the slice of the sandbox the evaluator drives.
type SandboxEngine interface {
	Execute(ctx context.Context, language, source string, args []string) sandbox.Outcome
}

// TestCaseEvaluator fetches a problem's test cases, runs the candidate source
// against each one sequentially, and aggregates verdicts.
type TestCaseEvaluator struct {
	problemRepo     repository.ProblemRepository
	engine          SandboxEngine
	runVisibleCases int
	logger          *zap.Logger
}

func NewTestCaseEvaluator(problemRepo repository.ProblemRepository, engine SandboxEngine, runVisibleCases int, logger *zap.Logger) *TestCaseEvaluator {
	if runVisibleCases <= 0 {
		runVisibleCases = 3
	}
	return &TestCaseEvaluator{
		problemRepo:     problemRepo,
		engine:          engine,
		runVisibleCases: runVisibleCases,
		logger:          logger,
	}
}

// Evaluate drives one sandboxed execution per visible test case. Submit mode
// and non-user roles see the full set; an ordinary user's run call is bounded
// to the first few cases so repeated runs can't mine hidden test content.
func (ev *TestCaseEvaluator) Evaluate(ctx context.Context, problemID int64, language, source string, mode model.ExecutionMode, role string) ([]model.ExecutionResult, *model.StandardError, error) {
	testCases, err := ev.problemRepo.GetTestCasesByProblemID(ctx, problemID)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch test cases: %w", err)
	}
	if len(testCases) == 0 {
		return nil, nil, common.NewCodedError(common.CodeTestCasesMissing,
			"No test cases found for this problem.", common.ErrNotFound)
	}

	if mode == model.ModeRun && role == model.RoleUser && len(testCases) > ev.runVisibleCases {
		testCases = testCases[:ev.runVisibleCases]
	}

	results := make([]model.ExecutionResult, 0, len(testCases))
	var stdErr *model.StandardError

	for _, tc := range testCases {
		// The harness performs the comparison itself; input and expected
		// output travel as an argument vector.
		args := []string{strings.TrimSpace(tc.Input), strings.TrimSpace(tc.Output)}
		outcome := ev.engine.Execute(ctx, language, source, args)

		result := model.ExecutionResult{
			TestCaseID: tc.ID,
			Success:    outcome.Success,
			Error:      outcome.Error,
		}
		if mode == model.ModeRun {
			result.Input = tc.Input
			result.ExpectedOutput = tc.Output
			result.ActualOutput = outcome.Output
		}
		results = append(results, result)

		if !outcome.Success && stdErr == nil {
			message := outcome.Error
			if message == "" {
				message = "Unknown execution error"
			}
			stdErr = &model.StandardError{Message: message, Details: outcome.Details}
		}
	}

	ev.logger.Debug("evaluation finished",
		zap.Int64("problem_id", problemID),
		zap.String("language", language),
		zap.String("mode", string(mode)),
		zap.Int("cases", len(results)))

	return results, stdErr, nil
}
