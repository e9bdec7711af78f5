package pricing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/jezhtech/fc-fleet-sub002/pkg/database"
	"github.com/jezhtech/fc-fleet-sub002/pkg/logger"
)

// Repository handles database access for fare rules
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new pricing repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const ruleColumns = `
	id, name, description, base_price, per_km_price, per_minute_price,
	min_fare, surge_multiplier, is_default, applicable_zone_ids,
	taxi_type_ids, special_conditions, is_active, created_at, updated_at
`

// ListActiveRules returns all active fare rules, most recently curated
// first. Rules with invalid rates are dropped here so resolution only ever
// sees usable rules.
func (r *Repository) ListActiveRules(ctx context.Context) ([]*FareRule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM fare_rules
		WHERE is_active = true
		ORDER BY updated_at DESC, id
	`

	rules, err := database.RetryableQuery(ctx, r.db, query, nil, func(rows pgx.Rows) ([]*FareRule, error) {
		result := make([]*FareRule, 0)
		for rows.Next() {
			rule, err := scanRule(rows.Scan)
			if err != nil {
				return nil, err
			}

			if !normalizeRule(ctx, rule) {
				continue
			}

			result = append(result, rule)
		}
		return result, rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list fare rules: %w", err)
	}

	return rules, nil
}

// GetRuleByID returns a single fare rule regardless of active state.
func (r *Repository) GetRuleByID(ctx context.Context, id uuid.UUID) (*FareRule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM fare_rules
		WHERE id = $1
	`

	rule, err := database.RetryableQueryRow(ctx, r.db, query, []interface{}{id}, func(row pgx.Row) (*FareRule, error) {
		return scanRule(row.Scan)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get fare rule %s: %w", id, err)
	}

	normalizeRule(ctx, rule)
	return rule, nil
}

func scanRule(scan func(dest ...interface{}) error) (*FareRule, error) {
	rule := &FareRule{}
	var zoneIDsJSON, taxiTypeIDsJSON, conditionsJSON []byte

	err := scan(
		&rule.ID, &rule.Name, &rule.Description,
		&rule.BasePrice, &rule.PerKmPrice, &rule.PerMinutePrice,
		&rule.MinFare, &rule.SurgeMultiplier, &rule.IsDefault,
		&zoneIDsJSON, &taxiTypeIDsJSON, &conditionsJSON,
		&rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan fare rule: %w", err)
	}

	if rule.ApplicableZoneIDs, err = parseIDArray(zoneIDsJSON); err != nil {
		return nil, fmt.Errorf("failed to parse applicable zone ids: %w", err)
	}
	if rule.TaxiTypeIDs, err = parseIDArray(taxiTypeIDsJSON); err != nil {
		return nil, fmt.Errorf("failed to parse taxi type ids: %w", err)
	}
	if len(conditionsJSON) > 0 {
		if err := json.Unmarshal(conditionsJSON, &rule.SpecialConditions); err != nil {
			return nil, fmt.Errorf("failed to parse special conditions: %w", err)
		}
	}

	return rule, nil
}

func parseIDArray(data []byte) ([]uuid.UUID, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var ids []uuid.UUID
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// normalizeRule clamps out-of-range admin input and reports whether the
// rule is usable. Negative rates make a rule unusable; a sub-unit surge
// multiplier is clamped to 1 (surge never discounts).
func normalizeRule(ctx context.Context, rule *FareRule) bool {
	if rule == nil {
		return false
	}

	if rule.BasePrice < 0 || rule.PerKmPrice < 0 || rule.PerMinutePrice < 0 || rule.MinFare < 0 {
		logger.WarnContext(ctx, "skipping fare rule with negative rates",
			zap.String("rule_id", rule.ID.String()),
			zap.String("rule_name", rule.Name),
		)
		return false
	}

	if rule.SurgeMultiplier < 1 {
		rule.SurgeMultiplier = 1
	}

	return true
}
