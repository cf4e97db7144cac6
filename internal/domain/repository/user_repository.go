package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"algojudge/internal/common"
)

// UserRepository is the read-only view onto the external account store this
// core needs: the actor's role.
type UserRepository interface {
	RoleByID(ctx context.Context, id string) (string, error)
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

func (r *pgUserRepository) RoleByID(ctx context.Context, id string) (string, error) {
	var role string
	err := r.db.QueryRowContext(ctx, `SELECT role FROM user_roles WHERE id = $1`, id).Scan(&role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrNotFound
		}
		return "", fmt.Errorf("pgUserRepository.RoleByID: %w", err)
	}
	return role, nil
}
