package dbx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505"}
	if !IsUniqueViolation(unique) {
		t.Fatal("expected unique violation to be detected")
	}
	if !IsUniqueViolation(fmt.Errorf("db error: %w", unique)) {
		t.Fatal("expected wrapped unique violation to be detected")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatal("foreign key violation is not a unique violation")
	}
	if IsUniqueViolation(errors.New("plain error")) {
		t.Fatal("plain error is not a unique violation")
	}
	if IsUniqueViolation(nil) {
		t.Fatal("nil is not a unique violation")
	}
}
