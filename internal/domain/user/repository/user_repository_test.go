package repository

import (
	"testing"

	"yumzy/internal/domain/user/model"
	"yumzy/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRepository(t *testing.T) {
	db := testutil.NewTestDB(t, &model.User{})
	repo := NewUserRepository(db)

	user := &model.User{FullName: "Asha Rao", Email: "asha@example.com", Password: "hash"}
	require.NoError(t, repo.Create(user))
	assert.NotEmpty(t, user.ID)

	t.Run("Get by id", func(t *testing.T) {
		got, err := repo.GetByID(user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Asha Rao", got.FullName)
		assert.Equal(t, 0, got.LoyaltyPoints)
	})

	t.Run("Get by email", func(t *testing.T) {
		got, err := repo.GetByEmail("asha@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("Missing user", func(t *testing.T) {
		_, err := repo.GetByEmail("nobody@example.com")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		err := repo.Create(&model.User{FullName: "Other", Email: "asha@example.com", Password: "hash"})
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	})
}
