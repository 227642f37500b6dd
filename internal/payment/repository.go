package payment

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	SaveRecord(ctx context.Context, rec *Record) error
	UpdateStatusByReference(ctx context.Context, reference string, status Status) error
	GetByReference(ctx context.Context, reference string) (*Record, error)

	// SaveWebhook stores an incoming event. isDuplicate is true when the
	// same event was already processed.
	SaveWebhook(ctx context.Context, w Webhook) (webhookID int64, isDuplicate bool, err error)
	MarkWebhookProcessed(ctx context.Context, webhookID int64) error
	MarkWebhookFailed(ctx context.Context, webhookID int64, reason string) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) SaveRecord(ctx context.Context, rec *Record) error {
	const q = `
	INSERT INTO payments (order_id, reference, authorization_url, amount, email, status)
	VALUES (:order_id, :reference, :authorization_url, :amount, :email, :status)
	ON CONFLICT (reference)
	DO UPDATE SET authorization_url = EXCLUDED.authorization_url, updated_at = now()
	`
	_, err := r.db.NamedExecContext(ctx, q, rec)
	return err
}

func (r *repository) UpdateStatusByReference(ctx context.Context, reference string, status Status) error {
	const q = `
	UPDATE payments SET status = $1, updated_at = now() WHERE reference = $2
	`
	res, err := r.db.ExecContext(ctx, q, status, reference)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *repository) GetByReference(ctx context.Context, reference string) (*Record, error) {
	const q = `
	SELECT id, order_id, reference, authorization_url, amount, email, status, created_at, updated_at
	FROM payments WHERE reference = $1
	`
	var rec Record
	if err := r.db.GetContext(ctx, &rec, q, reference); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *repository) SaveWebhook(ctx context.Context, w Webhook) (int64, bool, error) {
	// a redelivery of an unprocessed event is handed back for another attempt
	const q = `
	INSERT INTO payment_webhooks (
		provider,
		event_id,
		event_type,
		reference,
		signature_valid,
		payload
	)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (provider, event_id)
	DO UPDATE SET attempts = payment_webhooks.attempts + 1
	WHERE payment_webhooks.processed_at IS NULL
	RETURNING id;
	`

	var id int64
	err := r.db.QueryRowxContext(
		ctx,
		q,
		w.Provider,
		w.EventID,
		w.EventType,
		w.Reference,
		w.SignatureValid,
		w.Payload,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, true, nil
		}
		return 0, false, err
	}

	return id, false, nil
}

func (r *repository) MarkWebhookProcessed(ctx context.Context, webhookID int64) error {
	const q = `
	UPDATE payment_webhooks
	SET processed_at = now(), process_error = NULL
	WHERE id = $1;
	`
	_, err := r.db.ExecContext(ctx, q, webhookID)
	return err
}

func (r *repository) MarkWebhookFailed(ctx context.Context, webhookID int64, reason string) error {
	const q = `
	UPDATE payment_webhooks
	SET process_error = $2
	WHERE id = $1;
	`
	_, err := r.db.ExecContext(ctx, q, webhookID, reason)
	return err
}
