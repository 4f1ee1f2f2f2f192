package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_DeclaresLedgerTables(t *testing.T) {
	for _, table := range []string{"categories", "products", "images", "stock_movements"} {
		assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS "+table)
	}
	assert.Contains(t, schemaSQL, "CHECK (price >= 0)")
	assert.Equal(t, 3, strings.Count(schemaSQL, "WHERE NOT is_deleted"))
}

func TestResolveIPv4_Literals(t *testing.T) {
	ip, err := resolveIPv4(context.Background(), "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", ip)

	_, err = resolveIPv4(context.Background(), "::1")
	assert.Error(t, err)
}

func TestPgErrorClassification(t *testing.T) {
	fk := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"})
	check := &pgconn.PgError{Code: "23514"}

	assert.True(t, isForeignKeyViolation(fk))
	assert.False(t, isCheckViolation(fk))
	assert.True(t, isCheckViolation(check))
	assert.False(t, isForeignKeyViolation(errors.New("23503")))
}
