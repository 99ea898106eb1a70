// Package identity carries the authenticated caller through a request context.
package identity

import (
	"context"
	"nightlife/shared/constant"
	"nightlife/shared/failure"
	"slices"
)

var ErrUnauthenticated = failure.Unauthorized("authentication required")

type Identity struct {
	UserID  string
	Email   string
	Role    string
	TokenID string
}

func (i Identity) IsAdmin() bool {
	return i.Role == constant.RoleAdmin || i.Role == constant.RoleSuperAdmin
}

// IsStaff reports whether the caller can act on behalf of a venue.
func (i Identity) IsStaff() bool {
	return i.Role == constant.RoleManager || i.IsAdmin()
}

func (i Identity) HasRole(roles ...string) bool {
	return slices.Contains(roles, i.Role)
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, id.UserID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, id.Email)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, id.Role)
	ctx = context.WithValue(ctx, constant.ContextKeyTokenID, id.TokenID)

	return ctx
}

// FromContext returns ErrUnauthenticated when no user id was attached to ctx.
func FromContext(ctx context.Context) (Identity, error) {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == "" {
		return Identity{}, ErrUnauthenticated
	}

	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	tokenID, _ := ctx.Value(constant.ContextKeyTokenID).(string)

	return Identity{
		UserID:  userID,
		Email:   email,
		Role:    role,
		TokenID: tokenID,
	}, nil
}

// Actor names the caller for audit columns, falling back to guest.
func Actor(ctx context.Context) string {
	id, err := FromContext(ctx)
	if err != nil {
		return constant.ContextGuest
	}

	return id.UserID
}
