package postgres

import (
	"context"

	"github.com/google/uuid"
)

type subscriptionTokensRepo struct {
	db dbtx
}

func (r *subscriptionTokensRepo) CreateToken(
	ctx context.Context,
	token string,
	subscriberID uuid.UUID,
) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO subscription_tokens (subscription_token, subscriber_id)
		VALUES ($1, $2)`,
		token, subscriberID,
	)
	return mapConflict(err)
}

func (r *subscriptionTokensRepo) GetSubscriberIDByToken(
	ctx context.Context,
	token string,
) (uuid.UUID, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT subscriber_id FROM subscription_tokens WHERE subscription_token = $1`,
		token,
	)

	var id uuid.UUID
	if err := row.Scan(&id); err != nil {
		return uuid.Nil, mapNotFound(err)
	}
	return id, nil
}
