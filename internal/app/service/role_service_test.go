package service

import (
	"context"
	"errors"
	"testing"

	"algojudge/internal/domain/model"

	"go.uber.org/zap"
)

type fakeUserRepo struct {
	role  string
	err   error
	calls int
}

func (f *fakeUserRepo) RoleByID(ctx context.Context, userID string) (string, error) {
	f.calls++
	return f.role, f.err
}

func TestRoleByUserIDFallsBackToStoreWithoutCache(t *testing.T) {
	repo := &fakeUserRepo{role: model.RoleModerator}
	svc := NewRoleService(repo, nil, 0, zap.NewNop())

	role, err := svc.RoleByUserID(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("RoleByUserID failed: %v", err)
	}
	if role != model.RoleModerator {
		t.Fatalf("expected moderator, got %q", role)
	}
	if repo.calls != 1 {
		t.Fatalf("expected one store lookup, got %d", repo.calls)
	}
}

func TestRoleByUserIDPropagatesStoreError(t *testing.T) {
	storeErr := errors.New("no role row")
	svc := NewRoleService(&fakeUserRepo{err: storeErr}, nil, 0, zap.NewNop())

	_, err := svc.RoleByUserID(context.Background(), "user-1")
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
}
