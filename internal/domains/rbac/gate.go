package rbac

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// RoleStore is the persistence contract for roles and their assignments.
type RoleStore interface {
	RoleExists(ctx context.Context, name string) (bool, error)
	RolesByUser(ctx context.Context, userID int64) ([]string, error)
	HasAssignment(ctx context.Context, role string, userID int64) (bool, error)
	Assign(ctx context.Context, role string, userID int64) error
}

// Gate maps (actor, permission) to allow/deny. A nil userID is a guest.
type Gate struct {
	store RoleStore
}

func NewGate(store RoleStore) *Gate {
	return &Gate{store: store}
}

// guestAllowed holds the fixed guest capability set. Guests may browse and
// subscribe; reports are open to everyone.
func guestAllowed(p Permission) bool {
	switch p {
	case PermissionViewBooks, PermissionViewAuthors, PermissionSubscribeToAuthor, PermissionViewReports:
		return true
	case PermissionManageBooks, PermissionManageAuthors:
		return false
	default:
		return false
	}
}

// roleAllowed resolves a role's capability set. The "user" role carries the
// full permission set; it is the only role that exists.
func roleAllowed(role string, p Permission) bool {
	if role != RoleUser {
		return false
	}
	switch p {
	case PermissionViewBooks, PermissionViewAuthors, PermissionSubscribeToAuthor,
		PermissionManageBooks, PermissionManageAuthors, PermissionViewReports:
		return true
	default:
		return false
	}
}

// CheckAccess decides whether the actor may perform the action.
func (g *Gate) CheckAccess(ctx context.Context, userID *int64, p Permission) (bool, error) {
	if userID == nil {
		return guestAllowed(p), nil
	}

	roles, err := g.store.RolesByUser(ctx, *userID)
	if err != nil {
		return false, fmt.Errorf("failed to load roles for user %d: %w", *userID, err)
	}

	for _, role := range roles {
		if roleAllowed(role, p) {
			return true, nil
		}
	}

	return false, nil
}

// AssignDefaultRole gives a freshly created user the "user" role. Idempotent:
// an existing assignment is reported as success. Returns false only when the
// role row itself is missing, which is a bootstrap problem rather than a
// runtime one.
func (g *Gate) AssignDefaultRole(ctx context.Context, userID int64) (bool, error) {
	exists, err := g.store.RoleExists(ctx, RoleUser)
	if err != nil {
		return false, fmt.Errorf("failed to check role %q: %w", RoleUser, err)
	}
	if !exists {
		log.Warn().Str("role", RoleUser).Msg("default role is missing from the store")
		return false, nil
	}

	assigned, err := g.store.HasAssignment(ctx, RoleUser, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check role assignment: %w", err)
	}
	if assigned {
		return true, nil
	}

	if err := g.store.Assign(ctx, RoleUser, userID); err != nil {
		return false, fmt.Errorf("failed to assign role %q to user %d: %w", RoleUser, userID, err)
	}

	return true, nil
}
