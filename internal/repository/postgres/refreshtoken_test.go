package postgres

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/employerapp/api/internal/apperrors"
	"github.com/employerapp/api/internal/models"
	"github.com/employerapp/api/internal/testutil"
)

func Test_RefreshTokenRepo(t *testing.T) {
	t.Parallel() // It's ok to run in parallel with other tests, but not with subtests

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	tokenFor := func(userID uuid.UUID, value string) models.RefreshToken {
		return models.RefreshToken{
			ID:        uuid.New(),
			UserID:    userID,
			Token:     value,
			CreatedAt: mustParseTime("2024-01-01 19:00:01Z"),
		}
	}

	t.Run("save token ok", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			user := createTestUser(t, tx, "user@corp.example")
			repo := RefreshTokenRepo{DB: tx}
			token := tokenFor(user.ID, "secret-token")

			got, err := repo.Save(t.Context(), token)

			require.NoError(t, err)
			require.Equal(t, token.ID, got.ID)
			require.Equal(t, token.UserID, got.UserID)
			require.Equal(t, token.Token, got.Token)
			require.WithinDuration(t, token.CreatedAt, got.CreatedAt, time.Microsecond)
		})
	})

	t.Run("consume deletes and returns the row", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			user := createTestUser(t, tx, "user@corp.example")
			repo := RefreshTokenRepo{DB: tx}
			token := tokenFor(user.ID, "secret-token")
			_, err := repo.Save(t.Context(), token)
			require.NoError(t, err)

			got, err := repo.Consume(t.Context(), user.ID, "secret-token")

			require.NoError(t, err)
			require.Equal(t, token.ID, got.ID)
			require.Equal(t, token.Token, got.Token)

			_, err = repo.Consume(t.Context(), user.ID, "secret-token")
			require.Error(t, err, "token must be gone after first consume")
			assert.ErrorIs(t, err, apperrors.ErrRefreshTokenNotFound)
		})
	})

	t.Run("consume not existed token", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			user := createTestUser(t, tx, "user@corp.example")
			repo := RefreshTokenRepo{DB: tx}

			_, err := repo.Consume(t.Context(), user.ID, "never-saved")

			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrRefreshTokenNotFound)
		})
	})

	t.Run("consume checks the owner", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			owner := createTestUser(t, tx, "owner@corp.example")
			intruder := createTestUser(t, tx, "intruder@corp.example")
			repo := RefreshTokenRepo{DB: tx}
			_, err := repo.Save(t.Context(), tokenFor(owner.ID, "secret-token"))
			require.NoError(t, err)

			_, err = repo.Consume(t.Context(), intruder.ID, "secret-token")
			require.ErrorIs(t, err, apperrors.ErrRefreshTokenNotFound, "foreign token must not consume")

			_, err = repo.Consume(t.Context(), owner.ID, "secret-token")
			require.NoError(t, err, "owner token should stay intact")
		})
	})

	t.Run("delete for user", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			user := createTestUser(t, tx, "user@corp.example")
			other := createTestUser(t, tx, "other@corp.example")
			repo := RefreshTokenRepo{DB: tx}
			for _, value := range []string{"token-one", "token-two"} {
				_, err := repo.Save(t.Context(), tokenFor(user.ID, value))
				require.NoError(t, err)
			}
			_, err := repo.Save(t.Context(), tokenFor(other.ID, "token-three"))
			require.NoError(t, err)

			deleted, err := repo.DeleteForUser(t.Context(), user.ID)

			require.NoError(t, err)
			assert.Equal(t, int64(2), deleted)

			_, err = repo.Consume(t.Context(), other.ID, "token-three")
			assert.NoError(t, err, "other user tokens must survive")
		})
	})

	t.Run("delete for user without tokens", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			user := createTestUser(t, tx, "user@corp.example")
			repo := RefreshTokenRepo{DB: tx}

			deleted, err := repo.DeleteForUser(t.Context(), user.ID)

			require.NoError(t, err)
			assert.Equal(t, int64(0), deleted)
		})
	})
}
