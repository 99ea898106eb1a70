package identity_test

import (
	"context"
	"net/http"
	"nightlife/shared/constant"
	"nightlife/shared/failure"
	"nightlife/shared/identity"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	t.Run("missing identity", func(t *testing.T) {
		_, err := identity.FromContext(context.Background())

		assert.ErrorIs(t, err, identity.ErrUnauthenticated)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("round trip", func(t *testing.T) {
		want := identity.Identity{UserID: "u1", Email: "guest@example.com", Role: constant.RoleUser, TokenID: "t1"}

		got, err := identity.FromContext(identity.WithIdentity(context.Background(), want))

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestIdentityRoles(t *testing.T) {
	tests := []struct {
		role      string
		wantStaff bool
		wantAdmin bool
	}{
		{role: constant.RoleUser},
		{role: constant.RoleManager, wantStaff: true},
		{role: constant.RoleAdmin, wantStaff: true, wantAdmin: true},
		{role: constant.RoleSuperAdmin, wantStaff: true, wantAdmin: true},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			id := identity.Identity{UserID: "u1", Role: tt.role}

			assert.Equal(t, tt.wantStaff, id.IsStaff())
			assert.Equal(t, tt.wantAdmin, id.IsAdmin())
			assert.True(t, id.HasRole(tt.role))
		})
	}
}

func TestActor(t *testing.T) {
	assert.Equal(t, constant.ContextGuest, identity.Actor(context.Background()))
	assert.Equal(t, "u1", identity.Actor(identity.WithIdentity(context.Background(), identity.Identity{UserID: "u1"})))
}
