package entitlement

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgAddonStore is a PostgreSQL-backed AddonStore. Grants are upserted,
// revocations flip is_active; no statement deletes rows. The per-tenant
// state version lives in its own row and is bumped inside the same
// transaction as the grant change, so a reader can never observe a new
// version with old addon state.
type PgAddonStore struct {
	pool *pgxpool.Pool
}

// NewPgAddonStore creates an AddonStore over the given connection pool.
func NewPgAddonStore(pool *pgxpool.Pool) *PgAddonStore {
	return &PgAddonStore{pool: pool}
}

func (s *PgAddonStore) Grant(ctx context.Context, tenantID uuid.UUID, addon Addon) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO addon_entitlements (tenant_id, addon_id, country_code, is_active, trial_ends_at, updated_at)
			VALUES ($1, $2, $3, TRUE, $4, now())
			ON CONFLICT (tenant_id, addon_id, country_code)
			DO UPDATE SET is_active = TRUE, trial_ends_at = EXCLUDED.trial_ends_at, updated_at = now()`,
			tenantID, addon.AddonID, addon.CountryCode, addon.TrialEndsAt)
		if err != nil {
			return err
		}
		return bumpStateVersion(ctx, tx, tenantID)
	})
}

func (s *PgAddonStore) Revoke(ctx context.Context, tenantID uuid.UUID, addonID ModuleID, countryCode string) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE addon_entitlements
			SET is_active = FALSE, updated_at = now()
			WHERE tenant_id = $1 AND addon_id = $2 AND country_code = $3`,
			tenantID, addonID, countryCode)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrAddonNotFound
		}
		return bumpStateVersion(ctx, tx, tenantID)
	})
}

func (s *PgAddonStore) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]Addon, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT addon_id, country_code, is_active, trial_ends_at
		FROM addon_entitlements
		WHERE tenant_id = $1
		ORDER BY addon_id, country_code`,
		tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addons []Addon
	for rows.Next() {
		var a Addon
		if err := rows.Scan(&a.AddonID, &a.CountryCode, &a.Active, &a.TrialEndsAt); err != nil {
			return nil, err
		}
		addons = append(addons, a)
	}
	return addons, rows.Err()
}

func (s *PgAddonStore) StateVersion(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var version int64
	err := s.pool.QueryRow(ctx, `
		SELECT version FROM addon_state_versions WHERE tenant_id = $1`,
		tenantID).Scan(&version)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return version, nil
}

func bumpStateVersion(ctx context.Context, tx pgx.Tx, tenantID uuid.UUID) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO addon_state_versions (tenant_id, version)
		VALUES ($1, 1)
		ON CONFLICT (tenant_id) DO UPDATE SET version = addon_state_versions.version + 1`,
		tenantID)
	return err
}
