package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"vet-clinic/internal/ports/storage"
)

func TestMapErr(t *testing.T) {
	if mapErr(nil) != nil {
		t.Fatalf("nil debe seguir nil")
	}
	if !errors.Is(mapErr(sql.ErrNoRows), storage.ErrNotFound) {
		t.Fatalf("ErrNoRows debe mapear a ErrNotFound")
	}

	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	if !errors.Is(mapErr(dup), storage.ErrDuplicate) {
		t.Fatalf("23505 debe mapear a ErrDuplicate")
	}

	other := &pgconn.PgError{Code: "42P01"}
	if errors.Is(mapErr(other), storage.ErrDuplicate) {
		t.Fatalf("otros códigos no son duplicados")
	}
}

func TestTextArrayNeverNil(t *testing.T) {
	if got := textArray(nil); got == nil || len(got) != 0 {
		t.Fatalf("got %#v", got)
	}
}

func TestSchemaEmbedded(t *testing.T) {
	for _, table := range []string{"users", "doctors", "pets", "appointments", "reports"} {
		if !strings.Contains(schemaSQL, "CREATE TABLE IF NOT EXISTS "+table+" (") {
			t.Fatalf("schema sin tabla %s", table)
		}
	}
}
