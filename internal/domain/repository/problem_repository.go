package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"algojudge/internal/common"
	"algojudge/internal/domain/model"
)

type ProblemRepository interface {
	GetTestCasesByProblemID(ctx context.Context, problemID int64) ([]model.TestCase, error)
	GetStarterLogicCode(ctx context.Context, problemID int64, language string) (string, error)
	GetStarterCodes(ctx context.Context, problemID int64) ([]model.StarterCode, error)
	UpsertStarterCode(ctx context.Context, problemID int64, language string, userCode, logicCode *string) error
	GetProblemDifficulty(ctx context.Context, problemID int64) (model.ProblemDifficulty, error)
	GetDifficultyPoints(ctx context.Context, difficulty model.ProblemDifficulty) (int, error)
}

type pgProblemRepository struct {
	db *sql.DB
}

func NewPgProblemRepository(db *sql.DB) ProblemRepository {
	return &pgProblemRepository{db: db}
}

// GetTestCasesByProblemID returns the problem's test cases in a stable order;
// the first-failure rule for standardError depends on it.
func (r *pgProblemRepository) GetTestCasesByProblemID(ctx context.Context, problemID int64) ([]model.TestCase, error) {
	query := `SELECT id, problem_id, input, output, explanation
	          FROM test_cases WHERE problem_id = $1 ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query, problemID)
	if err != nil {
		return nil, fmt.Errorf("pgProblemRepository.GetTestCasesByProblemID query: %w", err)
	}
	defer rows.Close()

	var testCases []model.TestCase
	for rows.Next() {
		var tc model.TestCase
		if err := rows.Scan(&tc.ID, &tc.ProblemID, &tc.Input, &tc.Output, &tc.Explanation); err != nil {
			return nil, fmt.Errorf("pgProblemRepository.GetTestCasesByProblemID scan: %w", err)
		}
		testCases = append(testCases, tc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProblemRepository.GetTestCasesByProblemID rows.Err: %w", err)
	}
	return testCases, nil
}

func (r *pgProblemRepository) GetStarterLogicCode(ctx context.Context, problemID int64, language string) (string, error) {
	query := `SELECT sc.logic_code
	          FROM starter_code sc
	          JOIN languages l ON sc.language_id = l.id
	          WHERE sc.problem_id = $1 AND LOWER(l.name) = LOWER($2)`
	var logicCode sql.NullString
	err := r.db.QueryRowContext(ctx, query, problemID, language).Scan(&logicCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrNotFound
		}
		return "", fmt.Errorf("pgProblemRepository.GetStarterLogicCode: %w", err)
	}
	if !logicCode.Valid || logicCode.String == "" {
		return "", common.ErrNotFound
	}
	return logicCode.String, nil
}

func (r *pgProblemRepository) GetStarterCodes(ctx context.Context, problemID int64) ([]model.StarterCode, error) {
	query := `SELECT l.id, l.name, l.version, COALESCE(sc.user_code, ''), COALESCE(sc.logic_code, '')
	          FROM starter_code sc
	          JOIN languages l ON sc.language_id = l.id
	          WHERE sc.problem_id = $1
	          ORDER BY l.id ASC`
	rows, err := r.db.QueryContext(ctx, query, problemID)
	if err != nil {
		return nil, fmt.Errorf("pgProblemRepository.GetStarterCodes query: %w", err)
	}
	defer rows.Close()

	var codes []model.StarterCode
	for rows.Next() {
		var sc model.StarterCode
		if err := rows.Scan(&sc.LanguageID, &sc.Name, &sc.Version, &sc.UserCode, &sc.LogicCode); err != nil {
			return nil, fmt.Errorf("pgProblemRepository.GetStarterCodes scan: %w", err)
		}
		codes = append(codes, sc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProblemRepository.GetStarterCodes rows.Err: %w", err)
	}
	return codes, nil
}

func (r *pgProblemRepository) UpsertStarterCode(ctx context.Context, problemID int64, language string, userCode, logicCode *string) error {
	query := `INSERT INTO starter_code (problem_id, language_id, user_code, logic_code)
	          VALUES ($1, (SELECT id FROM languages WHERE LOWER(name) = LOWER($2)), $3, $4)
	          ON CONFLICT (problem_id, language_id)
	          DO UPDATE SET
	            user_code = COALESCE(EXCLUDED.user_code, starter_code.user_code),
	            logic_code = COALESCE(EXCLUDED.logic_code, starter_code.logic_code)`
	if _, err := r.db.ExecContext(ctx, query, problemID, language, userCode, logicCode); err != nil {
		return fmt.Errorf("pgProblemRepository.UpsertStarterCode: %w", err)
	}
	return nil
}

func (r *pgProblemRepository) GetProblemDifficulty(ctx context.Context, problemID int64) (model.ProblemDifficulty, error) {
	var difficulty model.ProblemDifficulty
	err := r.db.QueryRowContext(ctx, `SELECT difficulty FROM problems WHERE id = $1`, problemID).Scan(&difficulty)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrNotFound
		}
		return "", fmt.Errorf("pgProblemRepository.GetProblemDifficulty: %w", err)
	}
	return difficulty, nil
}

func (r *pgProblemRepository) GetDifficultyPoints(ctx context.Context, difficulty model.ProblemDifficulty) (int, error) {
	var points int
	err := r.db.QueryRowContext(ctx, `SELECT points FROM difficulty_points WHERE difficulty = $1`, difficulty).Scan(&points)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrNotFound
		}
		return 0, fmt.Errorf("pgProblemRepository.GetDifficultyPoints: %w", err)
	}
	return points, nil
}
