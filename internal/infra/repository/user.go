package repository

import (
	"context"
	"errors"
	"time"

	"printmarket/internal/infra"
	"printmarket/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

func (r *PostgresUserRepository) Create(ctx context.Context, view queries.UserView, passwordHash string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, role, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		view.ID, view.Email, passwordHash, view.Role, view.IsActive, time.Now().UTC(),
	)
	if err != nil {
		return wrapPgError("failed to insert user", err)
	}
	return nil
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*queries.UserView, string, error) {
	var view queries.UserView
	var hash string
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, role, is_active, password_hash
		FROM users
		WHERE email = $1`, email,
	).Scan(&view.ID, &view.Email, &view.Role, &view.IsActive, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, "", infra.WrapRepoErr(infra.KindNotFound, "user not found", err)
	}
	if err != nil {
		return nil, "", wrapPgError("failed to query user by email", err)
	}
	return &view, hash, nil
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	var view queries.UserView
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, role, is_active
		FROM users
		WHERE id = $1`, id,
	).Scan(&view.ID, &view.Email, &view.Role, &view.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "user not found", err)
	}
	if err != nil {
		return nil, wrapPgError("failed to query user by id", err)
	}
	return &view, nil
}

func (r *PostgresUserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users SET last_login = now() WHERE id = $1`, id)
	if err != nil {
		return wrapPgError("failed to update last login", err)
	}
	return nil
}
