package repository

import (
	"context"
	"database/sql"
	"fmt"

	"algojudge/internal/domain/model"
)

type SubmissionRepository interface {
	// SaveDraft upserts the latest known code for (problem, user, language)
	// without touching the status of a previously accepted row.
	SaveDraft(ctx context.Context, problemID int64, userID, language, userCode, logicCode string) error
	// UpsertAccepted marks the triple accepted with the final code and a fresh
	// timestamp. Idempotent: resubmitting re-stamps, never duplicates.
	UpsertAccepted(ctx context.Context, tx *sql.Tx, problemID int64, userID, language, userCode, logicCode string) error
	GetSubmission(ctx context.Context, problemID int64, userID, language string) (*model.SubmissionRecord, error)
}

type pgSubmissionRepository struct {
	db *sql.DB
}

func NewPgSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &pgSubmissionRepository{db: db}
}

func (r *pgSubmissionRepository) SaveDraft(ctx context.Context, problemID int64, userID, language, userCode, logicCode string) error {
	query := `INSERT INTO problem_submissions (problem_id, user_id, language_id, user_code, logic_code)
	          VALUES ($1, $2, (SELECT id FROM languages WHERE LOWER(name) = LOWER($3)), $4, $5)
	          ON CONFLICT (problem_id, user_id, language_id)
	          DO UPDATE SET
	            user_code = EXCLUDED.user_code,
	            logic_code = EXCLUDED.logic_code,
	            submitted_at = CURRENT_TIMESTAMP`
	if _, err := r.db.ExecContext(ctx, query, problemID, userID, language, userCode, logicCode); err != nil {
		return fmt.Errorf("pgSubmissionRepository.SaveDraft: %w", err)
	}
	return nil
}

func (r *pgSubmissionRepository) UpsertAccepted(ctx context.Context, tx *sql.Tx, problemID int64, userID, language, userCode, logicCode string) error {
	query := `INSERT INTO problem_submissions (problem_id, user_id, language_id, user_code, logic_code, status)
	          VALUES ($1, $2, (SELECT id FROM languages WHERE LOWER(name) = LOWER($3)), $4, $5, 'accepted')
	          ON CONFLICT (problem_id, user_id, language_id)
	          DO UPDATE SET
	            user_code = EXCLUDED.user_code,
	            logic_code = EXCLUDED.logic_code,
	            status = 'accepted',
	            submitted_at = CURRENT_TIMESTAMP`

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, problemID, userID, language, userCode, logicCode)
	} else {
		_, err = r.db.ExecContext(ctx, query, problemID, userID, language, userCode, logicCode)
	}
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.UpsertAccepted: %w", err)
	}
	return nil
}

func (r *pgSubmissionRepository) GetSubmission(ctx context.Context, problemID int64, userID, language string) (*model.SubmissionRecord, error) {
	query := `SELECT ps.id, ps.problem_id, ps.user_id, l.name, ps.user_code, ps.logic_code, ps.status, ps.submitted_at
	          FROM problem_submissions ps
	          JOIN languages l ON ps.language_id = l.id
	          WHERE ps.problem_id = $1 AND ps.user_id = $2 AND LOWER(l.name) = LOWER($3)`
	sub := &model.SubmissionRecord{}
	err := r.db.QueryRowContext(ctx, query, problemID, userID, language).Scan(
		&sub.ID, &sub.ProblemID, &sub.UserID, &sub.Language, &sub.UserCode, &sub.LogicCode, &sub.Status, &sub.SubmittedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.GetSubmission: %w", err)
	}
	return sub, nil
}
