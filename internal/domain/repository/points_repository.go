package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"algojudge/internal/common"
)

// PointsRepository guards the single awarded value per (problem, user).
// Reads and writes run inside the scoring transaction.
type PointsRepository interface {
	Get(ctx context.Context, tx *sql.Tx, problemID int64, userID string) (int, error)
	Insert(ctx context.Context, tx *sql.Tx, problemID int64, userID string, points int) error
	Update(ctx context.Context, tx *sql.Tx, problemID int64, userID string, points int) error
}

type pgPointsRepository struct {
	db *sql.DB
}

func NewPgPointsRepository(db *sql.DB) PointsRepository {
	return &pgPointsRepository{db: db}
}

func (r *pgPointsRepository) Get(ctx context.Context, tx *sql.Tx, problemID int64, userID string) (int, error) {
	query := `SELECT points FROM points WHERE problem_id = $1 AND user_id = $2`

	var points int
	var err error
	if tx != nil {
		err = tx.QueryRowContext(ctx, query, problemID, userID).Scan(&points)
	} else {
		err = r.db.QueryRowContext(ctx, query, problemID, userID).Scan(&points)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrNotFound
		}
		return 0, fmt.Errorf("pgPointsRepository.Get: %w", err)
	}
	return points, nil
}

func (r *pgPointsRepository) Insert(ctx context.Context, tx *sql.Tx, problemID int64, userID string, points int) error {
	query := `INSERT INTO points (problem_id, user_id, points) VALUES ($1, $2, $3)`

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, problemID, userID, points)
	} else {
		_, err = r.db.ExecContext(ctx, query, problemID, userID, points)
	}
	if err != nil {
		return fmt.Errorf("pgPointsRepository.Insert: %w", err)
	}
	return nil
}

func (r *pgPointsRepository) Update(ctx context.Context, tx *sql.Tx, problemID int64, userID string, points int) error {
	query := `UPDATE points SET points = $1, updated_at = CURRENT_TIMESTAMP
	          WHERE problem_id = $2 AND user_id = $3`

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, points, problemID, userID)
	} else {
		_, err = r.db.ExecContext(ctx, query, points, problemID, userID)
	}
	if err != nil {
		return fmt.Errorf("pgPointsRepository.Update: %w", err)
	}
	return nil
}
