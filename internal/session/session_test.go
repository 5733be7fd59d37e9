package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alumniconnect/client-go/internal/kvstore"
	"github.com/alumniconnect/client-go/internal/session"
)

func TestSaveLoadClear(t *testing.T) {
	ctx := context.Background()
	mgr := session.NewManager(kvstore.NewMemory(), nil)

	_, err := mgr.Load(ctx)
	require.ErrorIs(t, err, session.ErrNotSignedIn)

	profile := session.Profile{
		UserID: "u1",
		Name:   "Jordan Lee",
		Email:  "jordan@example.edu",
		Roles:  []string{"admin"},
	}
	require.NoError(t, mgr.Save(ctx, profile))

	loaded, err := mgr.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, profile, loaded)
	require.True(t, loaded.HasRole("admin"))
	require.False(t, loaded.HasRole("mentor"))

	require.NoError(t, mgr.Clear(ctx))
	_, err = mgr.Load(ctx)
	require.ErrorIs(t, err, session.ErrNotSignedIn)
}

func TestSaveRequiresUserID(t *testing.T) {
	mgr := session.NewManager(kvstore.NewMemory(), nil)
	require.Error(t, mgr.Save(context.Background(), session.Profile{Name: "anonymous"}))
}
