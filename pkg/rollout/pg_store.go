package rollout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStore is a PostgreSQL-backed rollout policy store. The version
// column carries the optimistic-concurrency token; updates are a
// compare-and-set on (country_code, version) so two concurrent editors
// of the same country cannot interleave into a merged state.
//
// PgStore implements the same read surface as MemoryStore but hits the
// database per lookup; request paths should read through a process-local
// snapshot refreshed on change notification.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore creates a rollout store over the given connection pool.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

// Put inserts or compare-and-sets the policy. expectedVersion zero
// means "create"; any other value must match the stored row.
func (s *PgStore) Put(ctx context.Context, p Policy, expectedVersion int64) (Policy, error) {
	if p.CountryCode == "" {
		return Policy{}, errors.Join(ErrInvalidPolicy, fmt.Errorf("policy missing country code"))
	}

	p.Version = expectedVersion + 1
	p.UpdatedAt = time.Now().UTC()

	if expectedVersion == 0 {
		cmd, err := s.pool.Exec(ctx, `
			INSERT INTO rollout_policies
				(country_code, is_active, business_types, modules, features, coming_soon_message, version, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (country_code) DO NOTHING`,
			p.CountryCode, p.Active, p.BusinessTypes, p.Modules, p.Features,
			p.ComingSoonMessage, p.Version, p.UpdatedAt)
		if err != nil {
			return Policy{}, err
		}
		if cmd.RowsAffected() == 0 {
			return Policy{}, errors.Join(ErrStaleWrite,
				fmt.Errorf("country %s already exists", p.CountryCode))
		}
		return p, nil
	}

	cmd, err := s.pool.Exec(ctx, `
		UPDATE rollout_policies
		SET is_active = $2, business_types = $3, modules = $4, features = $5,
		    coming_soon_message = $6, version = version + 1, updated_at = $7
		WHERE country_code = $1 AND version = $8`,
		p.CountryCode, p.Active, p.BusinessTypes, p.Modules, p.Features,
		p.ComingSoonMessage, p.UpdatedAt, expectedVersion)
	if err != nil {
		return Policy{}, err
	}
	if cmd.RowsAffected() == 0 {
		return Policy{}, errors.Join(ErrStaleWrite,
			fmt.Errorf("country %s: version %d is no longer current", p.CountryCode, expectedVersion))
	}
	return p, nil
}

// GetPolicy loads a country's policy.
func (s *PgStore) GetPolicy(ctx context.Context, countryCode string) (Policy, error) {
	var p Policy
	err := s.pool.QueryRow(ctx, `
		SELECT country_code, is_active, business_types, modules, features,
		       coming_soon_message, version, updated_at
		FROM rollout_policies
		WHERE country_code = $1`,
		countryCode).Scan(&p.CountryCode, &p.Active, &p.BusinessTypes, &p.Modules,
		&p.Features, &p.ComingSoonMessage, &p.Version, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Policy{}, ErrPolicyNotFound
	}
	if err != nil {
		return Policy{}, err
	}
	return p, nil
}

// LoadAll reads every policy, for seeding a process-local MemoryStore
// snapshot at startup or on refresh.
func (s *PgStore) LoadAll(ctx context.Context) ([]Policy, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT country_code, is_active, business_types, modules, features,
		       coming_soon_message, version, updated_at
		FROM rollout_policies
		ORDER BY country_code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var policies []Policy
	for rows.Next() {
		var p Policy
		if err := rows.Scan(&p.CountryCode, &p.Active, &p.BusinessTypes, &p.Modules,
			&p.Features, &p.ComingSoonMessage, &p.Version, &p.UpdatedAt); err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	return policies, rows.Err()
}
