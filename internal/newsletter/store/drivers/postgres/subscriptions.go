package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/paperwing/newsletter/internal/newsletter/store"
)

type subscriptionsRepo struct {
	db dbtx
}

func (r *subscriptionsRepo) CreateSubscriber(ctx context.Context, s store.SubscriberRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO subscriptions (id, email, name, status, subscribed_at)
		VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.Email, s.Name, string(s.Status), s.SubscribedAt,
	)
	return mapConflict(err)
}

func (r *subscriptionsRepo) GetSubscriberByEmail(
	ctx context.Context,
	email string,
) (store.SubscriberRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, name, status, subscribed_at
		FROM subscriptions
		WHERE email = $1`,
		email,
	)

	var rec store.SubscriberRecord
	if err := row.Scan(&rec.ID, &rec.Email, &rec.Name, &rec.Status, &rec.SubscribedAt); err != nil {
		return store.SubscriberRecord{}, mapNotFound(err)
	}
	return rec, nil
}

func (r *subscriptionsRepo) ConfirmSubscriber(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE subscriptions SET status = 'confirmed' WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *subscriptionsRepo) ListConfirmedEmails(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT email FROM subscriptions WHERE status = 'confirmed'`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}
