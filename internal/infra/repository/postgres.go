package repository

import (
	"context"
	"errors"
	"time"

	"printmarket/internal/domain/request"
	"printmarket/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const pgErrCodeUniqueViolation = "23505"

// PostgresRequestRepository persists print requests across three tables:
// print_requests, request_files, request_history. The version column
// carries the optimistic-concurrency guard.
type PostgresRequestRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRequestRepository(pool *pgxpool.Pool) *PostgresRequestRepository {
	return &PostgresRequestRepository{pool: pool}
}

func (r *PostgresRequestRepository) Create(ctx context.Context, req *request.PrintRequest) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	spec := req.Spec()
	_, err = tx.Exec(ctx, `
		INSERT INTO print_requests (
			id, customer_id, provider_id, material, quality, quantity, notes, location,
			status, created_at, updated_at, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		req.ID(), req.CustomerID(), req.ProviderID(),
		spec.Material, spec.Quality.String(), spec.Quantity, spec.Notes, spec.Location,
		req.Status().String(), req.CreatedAt(), req.UpdatedAt(), req.Version(),
	)
	if err != nil {
		return wrapPgError("failed to insert print request", err)
	}

	for i, f := range req.Files() {
		_, err = tx.Exec(ctx, `
			INSERT INTO request_files (request_id, position, name, size, mime_type)
			VALUES ($1, $2, $3, $4, $5)`,
			req.ID(), i, f.Name, f.Size, f.MimeType,
		)
		if err != nil {
			return wrapPgError("failed to insert request file", err)
		}
	}

	for _, h := range req.History() {
		if err := insertHistoryEntry(ctx, tx, req.ID(), h); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to commit transaction", err)
	}
	return nil
}

func (r *PostgresRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*request.PrintRequest, error) {
	return r.scanRequest(ctx, `
		SELECT id, customer_id, provider_id, material, quality, quantity, notes, location,
		       status, quote_amount::text, quote_delivery_days, quote_notes, quote_submitted_at,
		       quote_provider_id, created_at, updated_at, version
		FROM print_requests
		WHERE id = $1`, id)
}

// Update persists the outcome of a single applied action: a compare-and-swap
// on the version column plus the one history entry the action appended.
// Zero affected rows means another actor won the race.
func (r *PostgresRequestRepository) Update(ctx context.Context, req *request.PrintRequest, expectedVersion int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var quoteAmount *string
	var quoteDays *int
	var quoteNotes *string
	var quoteSubmittedAt *time.Time
	var quoteProviderID *uuid.UUID
	if q := req.Quote(); q != nil {
		amount := q.Amount.String()
		quoteAmount = &amount
		days := q.EstimatedDeliveryDays
		quoteDays = &days
		quoteNotes = q.Notes
		submittedAt := q.SubmittedAt
		quoteSubmittedAt = &submittedAt
		providerID := q.ProviderID
		quoteProviderID = &providerID
	}

	tag, err := tx.Exec(ctx, `
		UPDATE print_requests
		SET provider_id = $1, status = $2,
		    quote_amount = $3::numeric, quote_delivery_days = $4, quote_notes = $5,
		    quote_submitted_at = $6, quote_provider_id = $7,
		    updated_at = $8, version = version + 1
		WHERE id = $9 AND version = $10`,
		req.ProviderID(), req.Status().String(),
		quoteAmount, quoteDays, quoteNotes, quoteSubmittedAt, quoteProviderID,
		req.UpdatedAt(), req.ID(), expectedVersion,
	)
	if err != nil {
		return wrapPgError("failed to update print request", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindConflict, "print request version mismatch", nil)
	}

	history := req.History()
	if len(history) > 0 {
		if err := insertHistoryEntry(ctx, tx, req.ID(), history[len(history)-1]); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to commit transaction", err)
	}
	return nil
}

func (r *PostgresRequestRepository) ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]*request.PrintRequest, error) {
	return r.scanRequests(ctx, `
		SELECT id, customer_id, provider_id, material, quality, quantity, notes, location,
		       status, quote_amount::text, quote_delivery_days, quote_notes, quote_submitted_at,
		       quote_provider_id, created_at, updated_at, version
		FROM print_requests
		WHERE customer_id = $1
		ORDER BY created_at DESC`, customerID)
}

func (r *PostgresRequestRepository) ListForProvider(ctx context.Context, providerID uuid.UUID) ([]*request.PrintRequest, error) {
	return r.scanRequests(ctx, `
		SELECT id, customer_id, provider_id, material, quality, quantity, notes, location,
		       status, quote_amount::text, quote_delivery_days, quote_notes, quote_submitted_at,
		       quote_provider_id, created_at, updated_at, version
		FROM print_requests
		WHERE provider_id = $1
		ORDER BY created_at DESC`, providerID)
}

func (r *PostgresRequestRepository) ListAvailable(ctx context.Context, excludeCustomerID uuid.UUID) ([]*request.PrintRequest, error) {
	return r.scanRequests(ctx, `
		SELECT id, customer_id, provider_id, material, quality, quantity, notes, location,
		       status, quote_amount::text, quote_delivery_days, quote_notes, quote_submitted_at,
		       quote_provider_id, created_at, updated_at, version
		FROM print_requests
		WHERE status = 'requested' AND provider_id IS NULL AND customer_id <> $1
		ORDER BY created_at DESC`, excludeCustomerID)
}

type requestRow struct {
	id               uuid.UUID
	customerID       uuid.UUID
	providerID       *uuid.UUID
	material         string
	quality          string
	quantity         int
	notes            *string
	location         *string
	status           string
	quoteAmount      *string
	quoteDays        *int
	quoteNotes       *string
	quoteSubmittedAt *time.Time
	quoteProviderID  *uuid.UUID
	createdAt        time.Time
	updatedAt        time.Time
	version          int64
}

func (r *PostgresRequestRepository) scanRequest(ctx context.Context, query string, args ...any) (*request.PrintRequest, error) {
	var row requestRow
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&row.id, &row.customerID, &row.providerID, &row.material, &row.quality,
		&row.quantity, &row.notes, &row.location, &row.status,
		&row.quoteAmount, &row.quoteDays, &row.quoteNotes, &row.quoteSubmittedAt,
		&row.quoteProviderID, &row.createdAt, &row.updatedAt, &row.version,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "print request not found", err)
	}
	if err != nil {
		return nil, wrapPgError("failed to query print request", err)
	}
	return r.reconstruct(ctx, row)
}

func (r *PostgresRequestRepository) scanRequests(ctx context.Context, query string, args ...any) ([]*request.PrintRequest, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapPgError("failed to query print requests", err)
	}
	defer rows.Close()

	var base []requestRow
	for rows.Next() {
		var row requestRow
		err = rows.Scan(
			&row.id, &row.customerID, &row.providerID, &row.material, &row.quality,
			&row.quantity, &row.notes, &row.location, &row.status,
			&row.quoteAmount, &row.quoteDays, &row.quoteNotes, &row.quoteSubmittedAt,
			&row.quoteProviderID, &row.createdAt, &row.updatedAt, &row.version,
		)
		if err != nil {
			return nil, wrapPgError("failed to scan print request row", err)
		}
		base = append(base, row)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgError("failed to iterate print request rows", err)
	}

	result := make([]*request.PrintRequest, 0, len(base))
	for _, row := range base {
		req, err := r.reconstruct(ctx, row)
		if err != nil {
			return nil, err
		}
		result = append(result, req)
	}
	return result, nil
}

func (r *PostgresRequestRepository) reconstruct(ctx context.Context, row requestRow) (*request.PrintRequest, error) {
	files, err := r.loadFiles(ctx, row.id)
	if err != nil {
		return nil, err
	}
	history, err := r.loadHistory(ctx, row.id)
	if err != nil {
		return nil, err
	}

	var quote *request.Quote
	if row.quoteAmount != nil && row.quoteDays != nil && row.quoteSubmittedAt != nil && row.quoteProviderID != nil {
		amount, err := decimal.NewFromString(*row.quoteAmount)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to parse quote amount", err)
		}
		quote = &request.Quote{
			Amount:                amount,
			EstimatedDeliveryDays: *row.quoteDays,
			Notes:                 row.quoteNotes,
			SubmittedAt:           *row.quoteSubmittedAt,
			ProviderID:            *row.quoteProviderID,
		}
	}

	return request.ReconstructPrintRequest(
		row.id,
		row.customerID,
		row.providerID,
		files,
		request.Specification{
			Material: row.material,
			Quality:  request.Quality(row.quality),
			Quantity: row.quantity,
			Notes:    row.notes,
			Location: row.location,
		},
		request.Status(row.status),
		quote,
		history,
		row.createdAt,
		row.updatedAt,
		row.version,
	), nil
}

func (r *PostgresRequestRepository) loadFiles(ctx context.Context, requestID uuid.UUID) ([]request.FileDescriptor, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT name, size, mime_type
		FROM request_files
		WHERE request_id = $1
		ORDER BY position ASC`, requestID)
	if err != nil {
		return nil, wrapPgError("failed to query request files", err)
	}
	defer rows.Close()

	var files []request.FileDescriptor
	for rows.Next() {
		var f request.FileDescriptor
		if err := rows.Scan(&f.Name, &f.Size, &f.MimeType); err != nil {
			return nil, wrapPgError("failed to scan request file row", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

func (r *PostgresRequestRepository) loadHistory(ctx context.Context, requestID uuid.UUID) ([]request.HistoryEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT status, actor_id, notes, changed_at
		FROM request_history
		WHERE request_id = $1
		ORDER BY changed_at ASC, id ASC`, requestID)
	if err != nil {
		return nil, wrapPgError("failed to query request history", err)
	}
	defer rows.Close()

	var history []request.HistoryEntry
	for rows.Next() {
		var h request.HistoryEntry
		var status string
		if err := rows.Scan(&status, &h.ActorID, &h.Notes, &h.Timestamp); err != nil {
			return nil, wrapPgError("failed to scan request history row", err)
		}
		h.Status = request.Status(status)
		history = append(history, h)
	}
	return history, rows.Err()
}

func insertHistoryEntry(ctx context.Context, tx pgx.Tx, requestID uuid.UUID, h request.HistoryEntry) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO request_history (request_id, status, actor_id, notes, changed_at)
		VALUES ($1, $2, $3, $4, $5)`,
		requestID, h.Status.String(), h.ActorID, h.Notes, h.Timestamp,
	)
	if err != nil {
		return wrapPgError("failed to insert history entry", err)
	}
	return nil
}

func wrapPgError(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation {
		return infra.WrapRepoErr(infra.KindDuplicateKey, msg, err)
	}
	return infra.WrapRepoErr(infra.KindDBFailure, msg, err)
}
