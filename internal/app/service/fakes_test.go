package service

import (
	"context"
	"database/sql"

	"algojudge/internal/domain/model"
	"algojudge/internal/judge/sandbox"
)

type fakeProblemRepo struct {
	testCases    []model.TestCase
	testCasesErr error

	logicCode    string
	logicCodeErr error

	starterCodes    []model.StarterCode
	starterCodesErr error
	upserted        []struct {
		ProblemID int64
		Language  string
		UserCode  *string
		LogicCode *string
	}
	upsertErr error

	difficulty    model.ProblemDifficulty
	difficultyErr error
	points        int
	pointsErr     error
}

func (f *fakeProblemRepo) GetTestCasesByProblemID(ctx context.Context, problemID int64) ([]model.TestCase, error) {
	return f.testCases, f.testCasesErr
}

func (f *fakeProblemRepo) GetStarterLogicCode(ctx context.Context, problemID int64, language string) (string, error) {
	return f.logicCode, f.logicCodeErr
}

func (f *fakeProblemRepo) GetStarterCodes(ctx context.Context, problemID int64) ([]model.StarterCode, error) {
	// Hand back copies so callers mutating the slice don't corrupt the fixture.
	out := make([]model.StarterCode, len(f.starterCodes))
	copy(out, f.starterCodes)
	return out, f.starterCodesErr
}

func (f *fakeProblemRepo) UpsertStarterCode(ctx context.Context, problemID int64, language string, userCode, logicCode *string) error {
	f.upserted = append(f.upserted, struct {
		ProblemID int64
		Language  string
		UserCode  *string
		LogicCode *string
	}{problemID, language, userCode, logicCode})
	return f.upsertErr
}

func (f *fakeProblemRepo) GetProblemDifficulty(ctx context.Context, problemID int64) (model.ProblemDifficulty, error) {
	return f.difficulty, f.difficultyErr
}

func (f *fakeProblemRepo) GetDifficultyPoints(ctx context.Context, difficulty model.ProblemDifficulty) (int, error) {
	return f.points, f.pointsErr
}

type draftCall struct {
	ProblemID int64
	UserID    string
	Language  string
	UserCode  string
	LogicCode string
}

type fakeSubmissionRepo struct {
	drafts   []draftCall
	draftErr error
	accepted []draftCall
}

func (f *fakeSubmissionRepo) SaveDraft(ctx context.Context, problemID int64, userID, language, userCode, logicCode string) error {
	f.drafts = append(f.drafts, draftCall{problemID, userID, language, userCode, logicCode})
	return f.draftErr
}

func (f *fakeSubmissionRepo) UpsertAccepted(ctx context.Context, tx *sql.Tx, problemID int64, userID, language, userCode, logicCode string) error {
	f.accepted = append(f.accepted, draftCall{problemID, userID, language, userCode, logicCode})
	return nil
}

func (f *fakeSubmissionRepo) GetSubmission(ctx context.Context, problemID int64, userID, language string) (*model.SubmissionRecord, error) {
	return nil, nil
}

type engineCall struct {
	Language string
	Source   string
	Args     []string
}

type fakeEngine struct {
	calls   []engineCall
	outcome func(call int, args []string) sandbox.Outcome
}

func (f *fakeEngine) Execute(ctx context.Context, language, source string, args []string) sandbox.Outcome {
	n := len(f.calls)
	f.calls = append(f.calls, engineCall{language, source, args})
	if f.outcome != nil {
		return f.outcome(n, args)
	}
	return sandbox.Outcome{Success: true, Output: "ok"}
}

type evalCall struct {
	ProblemID int64
	Language  string
	Source    string
	Mode      model.ExecutionMode
	Role      string
}

type fakeEvaluator struct {
	calls   []evalCall
	results []model.ExecutionResult
	stdErr  *model.StandardError
	err     error
}

func (f *fakeEvaluator) Evaluate(ctx context.Context, problemID int64, language, source string, mode model.ExecutionMode, role string) ([]model.ExecutionResult, *model.StandardError, error) {
	f.calls = append(f.calls, evalCall{problemID, language, source, mode, role})
	return f.results, f.stdErr, f.err
}

type scoreCall struct {
	ProblemID int64
	UserID    string
	Language  string
	UserCode  string
	LogicCode string
}

type fakeScorer struct {
	calls  []scoreCall
	points int
	err    error
}

func (f *fakeScorer) RecordAcceptedSubmission(ctx context.Context, problemID int64, userID, language, userCode, logicCode string) (int, error) {
	f.calls = append(f.calls, scoreCall{problemID, userID, language, userCode, logicCode})
	return f.points, f.err
}

type fakeRoles struct {
	role string
	err  error
}

func (f *fakeRoles) RoleByUserID(ctx context.Context, userID string) (string, error) {
	return f.role, f.err
}
