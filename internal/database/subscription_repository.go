package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"feedreader/internal/domain"
)

// SubscriptionRepository handles database operations for subscriptions and
// their filter rules.
type SubscriptionRepository struct {
	db *sqlx.DB
}

// NewSubscriptionRepository creates a new subscription repository.
func NewSubscriptionRepository(db *sqlx.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// ListFilterEnabled returns the IDs of the user's subscriptions that have
// filtering turned on.
func (r *SubscriptionRepository) ListFilterEnabled(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id FROM subscriptions
		WHERE user_id = $1 AND filter_enabled = TRUE
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list filter-enabled subscriptions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan subscription id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscription rows: %w", err)
	}

	return ids, nil
}

// LoadFilterRules batch-loads the rule sets for the given subscriptions with
// a single query, grouped by subscription ID and ordered by insertion
// position within each set.
func (r *SubscriptionRepository) LoadFilterRules(ctx context.Context, subscriptionIDs []string) (map[string][]domain.FilterRule, error) {
	rulesBySub := make(map[string][]domain.FilterRule)
	if len(subscriptionIDs) == 0 {
		return rulesBySub, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, subscription_id, field, match_type, pattern, case_sensitive, position
		FROM subscription_filters
		WHERE subscription_id = ANY($1)
		ORDER BY subscription_id, position, created_at
	`, pq.Array(subscriptionIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to load filter rules: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rule domain.FilterRule
		err := rows.Scan(
			&rule.ID, &rule.SubscriptionID, &rule.Field, &rule.MatchType,
			&rule.Pattern, &rule.CaseSensitive, &rule.Position,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan filter rule: %w", err)
		}
		rulesBySub[rule.SubscriptionID] = append(rulesBySub[rule.SubscriptionID], rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating filter rule rows: %w", err)
	}

	return rulesBySub, nil
}
