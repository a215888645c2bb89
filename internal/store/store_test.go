package store

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestNilStoreGuards(t *testing.T) {
	var st *Store

	if err := st.HealthCheck(context.Background()); err == nil {
		t.Fatalf("HealthCheck on nil store should fail")
	}
	err := st.InTx(context.Background(), func(pgx.Tx) error {
		t.Fatalf("fn must not run without a pool")
		return nil
	})
	if err == nil {
		t.Fatalf("InTx on nil store should fail")
	}
	if st.Stats() != nil {
		t.Fatalf("Stats on nil store should be nil")
	}
	st.Close()
}

func TestNewRejectsBadURL(t *testing.T) {
	if _, err := New(context.Background(), "://not a url", Options{}); err == nil {
		t.Fatalf("expected parse error")
	}
}
