package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"algojudge/internal/common"
	"algojudge/internal/domain/repository"

	"go.uber.org/zap"
)

// ScoringService records a fully-passing submission and adjusts the user's
// points for the problem, all in one transaction.
type ScoringService struct {
	db             *sql.DB
	submissionRepo repository.SubmissionRepository
	problemRepo    repository.ProblemRepository
	pointsRepo     repository.PointsRepository
	logger         *zap.Logger
}

func NewScoringService(
	db *sql.DB,
	submissionRepo repository.SubmissionRepository,
	problemRepo repository.ProblemRepository,
	pointsRepo repository.PointsRepository,
	logger *zap.Logger,
) *ScoringService {
	return &ScoringService{
		db:             db,
		submissionRepo: submissionRepo,
		problemRepo:    problemRepo,
		pointsRepo:     pointsRepo,
		logger:         logger,
	}
}

// RecordAcceptedSubmission upserts the accepted submission and reconciles the
// points row for (problem, user). The returned value is what this call changed:
// the full value on first award, 0 on a repeat, the signed delta when the
// problem's configured points moved. Any failure rolls the whole transaction
// back and returns (0, err); the caller decides how to surface it.
func (s *ScoringService) RecordAcceptedSubmission(ctx context.Context, problemID int64, userID, language, userCode, logicCode string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin scoring transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.submissionRepo.UpsertAccepted(ctx, tx, problemID, userID, language, userCode, logicCode); err != nil {
		return 0, fmt.Errorf("upsert accepted submission: %w", err)
	}

	difficulty, err := s.problemRepo.GetProblemDifficulty(ctx, problemID)
	if err != nil {
		return 0, fmt.Errorf("resolve problem difficulty: %w", err)
	}
	resolved, err := s.problemRepo.GetDifficultyPoints(ctx, difficulty)
	if err != nil {
		return 0, fmt.Errorf("resolve difficulty points: %w", err)
	}

	existing, err := s.pointsRepo.Get(ctx, tx, problemID, userID)
	hasExisting := true
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			return 0, fmt.Errorf("look up points record: %w", err)
		}
		hasExisting = false
	}

	awarded := computeAward(hasExisting, existing, resolved)

	switch {
	case !hasExisting:
		if err := s.pointsRepo.Insert(ctx, tx, problemID, userID, resolved); err != nil {
			return 0, fmt.Errorf("insert points record: %w", err)
		}
	case awarded != 0:
		if err := s.pointsRepo.Update(ctx, tx, problemID, userID, resolved); err != nil {
			return 0, fmt.Errorf("update points record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit scoring transaction: %w", err)
	}

	s.logger.Info("accepted submission recorded",
		zap.Int64("problem_id", problemID),
		zap.String("user_id", userID),
		zap.String("language", language),
		zap.Int("points_awarded", awarded))

	return awarded, nil
}

// computeAward derives pointsAwarded from the existing points row and the
// problem's currently configured value. No row yet: the full value. Row equal:
// zero, so a repeat accepted submission (say, in a second language) awards
// nothing. Row differs: the signed delta, negative included, because the
// configured value legitimately moves.
func computeAward(hasExisting bool, existing, resolved int) int {
	if !hasExisting {
		return resolved
	}
	if existing == resolved {
		return 0
	}
	return resolved - existing
}
