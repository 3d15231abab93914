package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/testing/suite"
)

func TestPlayerRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	playerRepo := NewPlayerRepository(st.Storage, st.SessionTTL)

	// Given: a player with ID
	player := &entity.Player{
		ID: "123",
	}

	// When: CreateOrUpdate is called
	err := playerRepo.CreateOrUpdate(ctx, player)

	// Then: no error should be returned, and player is stored
	require.NoError(t, err)

	exists, err := st.Storage.Exists(ctx, "player:123").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists)
}

func TestPlayerRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		playerRepo := NewPlayerRepository(st.Storage, st.SessionTTL)

		// Given: a player seated in a game
		player := &entity.Player{
			ID:     "123",
			Mark:   entity.PlayerO,
			GameID: "game-1",
		}

		err := playerRepo.CreateOrUpdate(ctx, player)
		require.NoError(t, err)

		// When: GetByID is called with existing ID
		retrievedPlayer, err := playerRepo.GetByID(ctx, player.ID)

		// Then: the retrieved player should match the saved player
		require.NoError(t, err)
		assert.Equal(t, player, retrievedPlayer)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		playerRepo := NewPlayerRepository(st.Storage, st.SessionTTL)

		// When: GetByID is called with a non-existent ID
		_, err := playerRepo.GetByID(ctx, "nonexistent")

		// Then: ErrPlayerNotFound should be returned
		require.ErrorIs(t, err, ErrPlayerNotFound)
	})

	t.Run("Update overwrites the stored player", func(t *testing.T) {
		ctx, st := suite.New(t)

		playerRepo := NewPlayerRepository(st.Storage, st.SessionTTL)

		// Given: a stored player that leaves its game
		player := &entity.Player{ID: "123", Mark: entity.PlayerX, GameID: "game-1"}
		require.NoError(t, playerRepo.CreateOrUpdate(ctx, player))

		player.Mark, player.GameID = "", ""

		// When: it is saved again
		require.NoError(t, playerRepo.CreateOrUpdate(ctx, player))

		// Then: the latest version is read back
		retrievedPlayer, err := playerRepo.GetByID(ctx, player.ID)
		require.NoError(t, err)
		assert.Empty(t, retrievedPlayer.GameID)
	})
}
