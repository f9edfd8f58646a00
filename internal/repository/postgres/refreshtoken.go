package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/employerapp/api/internal/apperrors"
	"github.com/employerapp/api/internal/models"
)

type RefreshTokenRepo struct {
	DB DBTX
}

const saveToken = `-- name: SaveRefreshToken
INSERT INTO refresh_tokens (id, user_id, token, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id, user_id, token, created_at
`

func (r *RefreshTokenRepo) Save(ctx context.Context, token models.RefreshToken) (models.RefreshToken, error) {
	rows, _ := r.DB.Query(ctx, saveToken, token.ID, token.UserID, token.Token, token.CreatedAt)
	saved, err := pgx.CollectOneRow(rows, rowToRefreshToken)
	if err != nil {
		return saved, fmt.Errorf("db error: %w", err)
	}
	return saved, nil
}

const consumeToken = `-- name: ConsumeRefreshToken
DELETE FROM refresh_tokens
WHERE user_id = $1 AND token = $2
RETURNING id, user_id, token, created_at
`

// Consume deletes the (user, token) row and returns it
// Single statement, so of two concurrent consumers exactly one sees the row
func (r *RefreshTokenRepo) Consume(ctx context.Context, userID uuid.UUID, tokenString string) (models.RefreshToken, error) {
	rows, _ := r.DB.Query(ctx, consumeToken, userID, tokenString)
	token, err := pgx.CollectOneRow(rows, rowToRefreshToken)

	switch {
	case err == nil:
		return token, nil
	case errors.Is(err, pgx.ErrNoRows):
		return token, apperrors.ErrRefreshTokenNotFound
	default:
		return token, fmt.Errorf("db error: %w", err)
	}
}

const deleteUserTokens = `-- name: DeleteUserRefreshTokens
DELETE FROM refresh_tokens
WHERE user_id = $1
`

func (r *RefreshTokenRepo) DeleteForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	tag, err := r.DB.Exec(ctx, deleteUserTokens, userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return tag.RowsAffected(), nil
}

func rowToRefreshToken(row pgx.CollectableRow) (models.RefreshToken, error) {
	var t models.RefreshToken
	err := row.Scan(&t.ID, &t.UserID, &t.Token, &t.CreatedAt)
	return t, err
}
