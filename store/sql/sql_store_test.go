package sql

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"

	guard "github.com/khidma/guard"
)

func TestRebind(t *testing.T) {
	tests := []struct {
		dialect Dialect
		query   string
		want    string
	}{
		{DialectMySQL, "SELECT * FROM chat_strikes WHERE owner_ref = ?", "SELECT * FROM chat_strikes WHERE owner_ref = ?"},
		{DialectPostgres, "SELECT * FROM chat_strikes WHERE owner_ref = ?", "SELECT * FROM chat_strikes WHERE owner_ref = $1"},
		{DialectPostgres, "INSERT INTO t (a, b, c) VALUES (?, ?, ?)", "INSERT INTO t (a, b, c) VALUES ($1, $2, $3)"},
		{DialectPostgres, "SELECT 1", "SELECT 1"},
	}

	for _, tt := range tests {
		s := &Store{dialect: tt.dialect}
		if got := s.rebind(tt.query); got != tt.want {
			t.Errorf("rebind(%q, %s) = %q, want %q", tt.query, tt.dialect, got, tt.want)
		}
	}
}

// testStore connects to the database named by TEST_DATABASE_URL and
// migrates it, or skips the test when no database is available.
func testStore(t *testing.T) *Store {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skipf("TEST_DATABASE_URL not set, skipping database test")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Skipf("database unavailable: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Skipf("database unavailable: %v", err)
	}
	if err := Migrate(db, DialectPostgres); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	s := NewWithDB(db, DialectPostgres)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_StrikeLifecycle(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	owner := "test-owner-" + time.Now().Format("20060102150405.000")
	now := time.Now().UTC().Truncate(time.Second)

	t.Cleanup(func() { _ = s.ClearStrikes(ctx, owner) })

	strike := guard.Strike{
		OwnerRef:      owner,
		ViolationType: guard.CategoryEmail,
		Snippet:       "reach me at someone@example.com",
		CreatedAt:     now,
		ExpiresAt:     now.Add(guard.StrikeTTL),
	}

	count, err := s.AddStrike(ctx, strike)
	if err != nil {
		t.Fatalf("AddStrike: %v", err)
	}
	if count != 1 {
		t.Errorf("active count = %d, want 1", count)
	}

	count, err = s.CountActiveStrikes(ctx, owner, now)
	if err != nil {
		t.Fatalf("CountActiveStrikes: %v", err)
	}
	if count != 1 {
		t.Errorf("CountActiveStrikes = %d, want 1", count)
	}

	until := now.Add(guard.SuspensionTerm)
	if err := s.SetSuspendedUntil(ctx, owner, until); err != nil {
		t.Fatalf("SetSuspendedUntil: %v", err)
	}
	got, err := s.GetSuspendedUntil(ctx, owner)
	if err != nil {
		t.Fatalf("GetSuspendedUntil: %v", err)
	}
	if got == nil || !got.UTC().Equal(until) {
		t.Errorf("GetSuspendedUntil = %v, want %v", got, until)
	}

	// Upsert extends the existing row.
	later := until.Add(guard.SuspensionTerm)
	if err := s.SetSuspendedUntil(ctx, owner, later); err != nil {
		t.Fatalf("SetSuspendedUntil (extend): %v", err)
	}
	got, err = s.GetSuspendedUntil(ctx, owner)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || !got.UTC().Equal(later) {
		t.Errorf("extended GetSuspendedUntil = %v, want %v", got, later)
	}

	if err := s.ClearStrikes(ctx, owner); err != nil {
		t.Fatalf("ClearStrikes: %v", err)
	}
	count, err = s.CountActiveStrikes(ctx, owner, now)
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("count after clear = %d", count)
	}
}
