package service

import (
	"context"
	"fmt"

	"algojudge/internal/common"
	"algojudge/internal/domain/model"
	"algojudge/internal/domain/repository"
	"algojudge/internal/judge/registry"

	"go.uber.org/zap"
)

type ExecutionRequest struct {
	ProblemID int64  `json:"problemId"`
	Language  string `json:"language"`
	UserCode  string `json:"userCode"`
	LogicCode string `json:"logicCode,omitempty"`
	UserID    string `json:"userId"`
	Mode      string `json:"mode"`
}

type JudgeResponse struct {
	Success         bool                    `json:"success"`
	Results         []model.ExecutionResult `json:"results"`
	StandardError   *model.StandardError    `json:"standardError,omitempty"`
	IsSubmitSuccess bool                    `json:"isSubmitSuccess"`
	PointsAwarded   int                     `json:"pointsAwarded"`
	ScoringFailed   bool                    `json:"scoringFailed,omitempty"`
}

// Evaluator and Scorer are the orchestrator's views of its collaborators.
type Evaluator interface {
	Evaluate(ctx context.Context, problemID int64, language, source string, mode model.ExecutionMode, role string) ([]model.ExecutionResult, *model.StandardError, error)
}

type Scorer interface {
	RecordAcceptedSubmission(ctx context.Context, problemID int64, userID, language, userCode, logicCode string) (int, error)
}

type RoleResolver interface {
	RoleByUserID(ctx context.Context, userID string) (string, error)
}

// ExecutionService is the HTTP-facing judging entry point: it validates the
// request, resolves the two-part source, autosaves the draft, delegates to
// the evaluator, and triggers scoring on a fully-passing submit.
type ExecutionService struct {
	registry       *registry.Registry
	problemRepo    repository.ProblemRepository
	submissionRepo repository.SubmissionRepository
	evaluator      Evaluator
	scorer         Scorer
	roles          RoleResolver
	logger         *zap.Logger
}

func NewExecutionService(
	reg *registry.Registry,
	problemRepo repository.ProblemRepository,
	submissionRepo repository.SubmissionRepository,
	evaluator Evaluator,
	scorer Scorer,
	roles RoleResolver,
	logger *zap.Logger,
) *ExecutionService {
	return &ExecutionService{
		registry:       reg,
		problemRepo:    problemRepo,
		submissionRepo: submissionRepo,
		evaluator:      evaluator,
		scorer:         scorer,
		roles:          roles,
		logger:         logger,
	}
}

func (s *ExecutionService) Handle(ctx context.Context, req ExecutionRequest) (*JudgeResponse, error) {
	if req.ProblemID <= 0 || req.Language == "" || req.UserCode == "" || req.Mode == "" {
		return nil, common.NewCodedError(common.CodeValidationError,
			"Missing required fields", common.ErrValidation)
	}
	mode := model.ExecutionMode(req.Mode)
	if mode != model.ModeRun && mode != model.ModeSubmit {
		return nil, common.NewCodedError(common.CodeValidationError,
			fmt.Sprintf("Unknown mode %q", req.Mode), common.ErrValidation)
	}
	if req.UserID == "" {
		return nil, common.NewCodedError(common.CodeValidationError,
			"Missing userId", common.ErrValidation)
	}
	if _, err := s.registry.Resolve(req.Language); err != nil {
		return nil, common.NewCodedError(common.CodeUnsupportedLanguage,
			fmt.Sprintf("Language %q is not supported", req.Language), err)
	}

	// Visibility policy depends on the actor's role, so a failed lookup is
	// fatal to the request.
	role, err := s.roles.RoleByUserID(ctx, req.UserID)
	if err != nil {
		return nil, common.NewCodedError(common.CodeRoleMissing,
			"User role not found.", err)
	}

	logicCode := req.LogicCode
	if logicCode == "" {
		logicCode, err = s.problemRepo.GetStarterLogicCode(ctx, req.ProblemID, req.Language)
		if err != nil {
			return nil, common.NewCodedError(common.CodeStarterCodeMissing,
				"No starter code found for this language and problem.", err)
		}
	}

	// Best-effort autosave: execution proceeds even if the draft write fails.
	if err := s.submissionRepo.SaveDraft(ctx, req.ProblemID, req.UserID, req.Language, req.UserCode, logicCode); err != nil {
		s.logger.Warn("draft autosave failed",
			zap.Int64("problem_id", req.ProblemID),
			zap.String("user_id", req.UserID),
			zap.Error(err))
	}

	fullSource := req.UserCode + "\n" + logicCode

	results, stdErr, err := s.evaluator.Evaluate(ctx, req.ProblemID, req.Language, fullSource, mode, role)
	if err != nil {
		return nil, err
	}

	resp := &JudgeResponse{
		Success:       true,
		Results:       results,
		StandardError: stdErr,
	}

	// An empty result set is never a vacuous pass.
	allPassed := len(results) > 0
	for _, r := range results {
		if !r.Success {
			allPassed = false
			break
		}
	}

	if mode == model.ModeSubmit && allPassed {
		resp.IsSubmitSuccess = true
		points, err := s.scorer.RecordAcceptedSubmission(ctx, req.ProblemID, req.UserID, req.Language, req.UserCode, logicCode)
		if err != nil {
			// The verdict stands; scoring failure is surfaced, not swallowed.
			s.logger.Error("scoring failed after accepted submission",
				zap.Int64("problem_id", req.ProblemID),
				zap.String("user_id", req.UserID),
				zap.Error(err))
			resp.ScoringFailed = true
		} else {
			resp.PointsAwarded = points
		}
	}

	return resp, nil
}
