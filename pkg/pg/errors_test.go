package pg_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub003/pkg/pg"
)

func TestErrorHelpers(t *testing.T) {
	t.Parallel()

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		assert.True(t, pg.IsNotFound(pgx.ErrNoRows))
		assert.True(t, pg.IsNotFound(fmt.Errorf("query: %w", pgx.ErrNoRows)))
		assert.False(t, pg.IsNotFound(errors.New("other")))
		assert.False(t, pg.IsNotFound(nil))
	})

	t.Run("duplicate key", func(t *testing.T) {
		t.Parallel()
		dup := &pgconn.PgError{Code: "23505"}
		assert.True(t, pg.IsDuplicateKey(dup))
		assert.True(t, pg.IsDuplicateKey(fmt.Errorf("insert: %w", dup)))
		assert.False(t, pg.IsDuplicateKey(&pgconn.PgError{Code: "23503"}))
	})

	t.Run("foreign key violation", func(t *testing.T) {
		t.Parallel()
		fk := &pgconn.PgError{Code: "23503"}
		assert.True(t, pg.IsForeignKeyViolation(fk))
		assert.False(t, pg.IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
	})
}
