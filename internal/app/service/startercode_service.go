package service

import (
	"context"
	"fmt"

	"algojudge/internal/common"
	"algojudge/internal/domain/model"
	"algojudge/internal/domain/repository"
)

// StarterCodeService serves and updates per-language starter code. Harness
// (logic) code is only visible to moderator/admin callers.
type StarterCodeService struct {
	problemRepo repository.ProblemRepository
	roles       RoleResolver
}

func NewStarterCodeService(problemRepo repository.ProblemRepository, roles RoleResolver) *StarterCodeService {
	return &StarterCodeService{problemRepo: problemRepo, roles: roles}
}

func (s *StarterCodeService) Get(ctx context.Context, problemID int64, userID string) ([]model.StarterCode, error) {
	if problemID <= 0 || userID == "" {
		return nil, common.NewCodedError(common.CodeValidationError,
			"Problem ID and user ID are required.", common.ErrValidation)
	}

	role, err := s.roles.RoleByUserID(ctx, userID)
	if err != nil {
		return nil, common.NewCodedError(common.CodeRoleMissing, "User role not found.", err)
	}

	codes, err := s.problemRepo.GetStarterCodes(ctx, problemID)
	if err != nil {
		return nil, fmt.Errorf("fetch starter codes: %w", err)
	}

	if role == model.RoleUser {
		for i := range codes {
			codes[i].LogicCode = ""
		}
	}
	return codes, nil
}

type UpdateStarterCodeRequest struct {
	ProblemID int64   `json:"problemId"`
	Language  string  `json:"language"`
	UserCode  *string `json:"userCode,omitempty"`
	LogicCode *string `json:"logicCode,omitempty"`
}

func (s *StarterCodeService) Update(ctx context.Context, actorID string, req UpdateStarterCodeRequest) error {
	if req.ProblemID <= 0 || req.Language == "" || (req.UserCode == nil && req.LogicCode == nil) {
		return common.NewCodedError(common.CodeValidationError,
			"Problem ID, language and at least one code field are required.", common.ErrValidation)
	}

	role, err := s.roles.RoleByUserID(ctx, actorID)
	if err != nil {
		return common.NewCodedError(common.CodeRoleMissing, "User role not found.", err)
	}
	if role != model.RoleModerator && role != model.RoleAdmin {
		return common.NewCodedError(common.CodeForbidden,
			"Moderator access required.", common.ErrForbidden)
	}

	if err := s.problemRepo.UpsertStarterCode(ctx, req.ProblemID, req.Language, req.UserCode, req.LogicCode); err != nil {
		return fmt.Errorf("upsert starter code: %w", err)
	}
	return nil
}
