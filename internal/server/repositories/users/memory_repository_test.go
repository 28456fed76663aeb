package users

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/goldmanager/internal/common"
	"github.com/dmitrijs2005/goldmanager/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	_, err := r.Create(ctx, &models.User{UserName: "bob", PasswordDigest: "b", Active: true})
	require.NoError(t, err)
	_, err = r.Create(ctx, &models.User{UserName: "alice", PasswordDigest: "a", Active: true})
	require.NoError(t, err)

	_, err = r.Create(ctx, &models.User{UserName: "alice", PasswordDigest: "x"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	ok, err := r.Exists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = r.FindActive(ctx, "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	ok, err = r.UpdateActive(ctx, "alice", false)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = r.UpdatePassword(ctx, "alice", "a2")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = r.UpdatePassword(ctx, "ghost", "zz")
	require.NoError(t, err)
	assert.False(t, ok)

	u, err := r.FindActive(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, models.User{UserName: "alice", PasswordDigest: "a2", Active: false}, *u)

	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "alice", list[0].UserName)
	assert.Equal(t, "bob", list[1].UserName)
}

func TestMemoryRepository_FindReturnsCopy(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()
	_, err := r.Create(ctx, &models.User{UserName: "alice", PasswordDigest: "a", Active: true})
	require.NoError(t, err)

	u, err := r.FindActive(ctx, "alice")
	require.NoError(t, err)
	u.Active = false

	again, err := r.FindActive(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, again.Active)
}
