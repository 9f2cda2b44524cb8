package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"plushhub/internal/database"
	"plushhub/internal/domain"
)

func setupDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, name string) *domain.User {
	u := &domain.User{Name: name, Email: name + "@test.com", PasswordHash: "x"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestToyRepository_CreateWithOwner_WritesBothRows(t *testing.T) {
	db := setupDB(t)
	repo := NewToyRepository(db)
	user := createUser(t, db, "mia")

	toy := &domain.Toy{Name: "Cinnamoroll", Brand: "Sanrio", Category: domain.CategorySanrio, CreatorID: user.ID}
	require.NoError(t, repo.CreateWithOwner(context.Background(), toy))

	var items int64
	db.Model(&domain.CollectionItem{}).
		Where("user_id = ? AND toy_id = ? AND kind = ?", user.ID, toy.ID, domain.ContainerOwned).
		Count(&items)
	assert.Equal(t, int64(1), items)
}

func TestToyRepository_CreateWithOwner_AttachFailureRollsBackToy(t *testing.T) {
	db := setupDB(t)
	repo := NewToyRepository(db)
	user := createUser(t, db, "mia")

	// Dropping the membership table makes the second insert of the
	// transaction fail after the toy insert succeeded.
	require.NoError(t, db.Exec("DROP TABLE collection_items").Error)

	toy := &domain.Toy{Name: "Cinnamoroll", Brand: "Sanrio", Category: domain.CategorySanrio, CreatorID: user.ID}
	err := repo.CreateWithOwner(context.Background(), toy)
	require.Error(t, err)

	var toys int64
	db.Model(&domain.Toy{}).Count(&toys)
	assert.Zero(t, toys, "toy insert must roll back when the owned-collection write fails")
}

func TestToyRepository_DeleteCascade_RemovesMembershipRows(t *testing.T) {
	db := setupDB(t)
	repo := NewToyRepository(db)
	creator := createUser(t, db, "mia")
	fan := createUser(t, db, "theo")

	toy := &domain.Toy{Name: "Cinnamoroll", Brand: "Sanrio", Category: domain.CategorySanrio, CreatorID: creator.ID}
	require.NoError(t, repo.CreateWithOwner(context.Background(), toy))
	require.NoError(t, db.Create(&domain.CollectionItem{UserID: fan.ID, ToyID: toy.ID, Kind: domain.ContainerWishlist}).Error)
	require.NoError(t, db.Create(&domain.ToyLike{ToyID: toy.ID, UserID: fan.ID}).Error)
	require.NoError(t, db.Create(&domain.ToyReview{ToyID: toy.ID, UserID: fan.ID, Rating: 5}).Error)

	require.NoError(t, repo.DeleteCascade(context.Background(), toy.ID))

	for _, model := range []interface{}{&domain.CollectionItem{}, &domain.ToyLike{}, &domain.ToyReview{}} {
		var count int64
		db.Model(model).Where("toy_id = ?", toy.ID).Count(&count)
		assert.Zero(t, count, "no %T rows may survive the cascade", model)
	}
	assert.ErrorIs(t, db.First(&domain.Toy{}, toy.ID).Error, gorm.ErrRecordNotFound)
}
