package dbtest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ResetDB truncates every table so each subtest starts from a clean slate.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, `TRUNCATE request_history, request_files, print_requests, users CASCADE`)
	return err
}

// SeedUser inserts a user row so foreign keys on print_requests resolve.
// The password hash is a placeholder; these rows never log in.
func SeedUser(pool *pgxpool.Pool, id uuid.UUID, email string, role string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, role, is_active, created_at)
		VALUES ($1, $2, 'seeded', $3, TRUE, now())`,
		id, email, role,
	)
	return err
}
