package service_test

import (
	"employee-panel/internal/models"
	"employee-panel/internal/service"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterChat_Idempotent(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.users.RegisterChat(env.ctx, 42, "ivan", "Иван")
	require.NoError(t, err)
	assert.Equal(t, models.RoleClient, first.Role)

	second, err := env.users.RegisterChat(env.ctx, 42, "other", "Другой")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "ivan", second.Username)
	assert.Equal(t, int64(1), env.count(t, &models.User{}))
}

func TestGetUserByChatID(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.users.GetUserByChatID(env.ctx, 7)
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	registered, err := env.users.RegisterChat(env.ctx, 7, "", "Олег")
	require.NoError(t, err)

	got, err := env.users.GetUserByChatID(env.ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, got.ID)

	_, err = env.users.GetUserByID(env.ctx, registered.ID+1)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestInitializeAdmin(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.users.InitializeAdmin(env.ctx, 0))
	assert.Equal(t, int64(0), env.count(t, &models.User{}))

	require.NoError(t, env.users.InitializeAdmin(env.ctx, 100))
	admin, err := env.users.GetUserByChatID(env.ctx, 100)
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())

	require.NoError(t, env.users.InitializeAdmin(env.ctx, 100))
	assert.Equal(t, int64(1), env.count(t, &models.User{}))

	client, err := env.users.RegisterChat(env.ctx, 200, "petr", "Петр")
	require.NoError(t, err)
	require.False(t, client.IsAdmin())

	require.NoError(t, env.users.InitializeAdmin(env.ctx, 200))
	promoted, err := env.users.GetUserByChatID(env.ctx, 200)
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin())
}

func TestFormatUserInfo(t *testing.T) {
	env := newTestEnv(t)

	info := env.users.FormatUserInfo(&models.User{ID: 3, ChatID: 55, Username: "anna", FirstName: "Анна", Role: models.RoleAdmin})
	assert.Contains(t, info, "🆔 ID сотрудника: 3")
	assert.Contains(t, info, "@anna")
	assert.Contains(t, info, "👑 Роль: admin")

	info = env.users.FormatUserInfo(&models.User{ID: 4, ChatID: 56, Role: models.RoleClient})
	assert.NotContains(t, info, "Никнейм")
}
