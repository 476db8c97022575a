package chat

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	guard "github.com/khidma/guard"
	"github.com/khidma/guard/hooks"
	"github.com/khidma/guard/store"
)

// recorder captures hook invocations for assertions.
type recorder struct {
	mu          sync.Mutex
	warnings    []hooks.StrikeWarningEvent
	suspensions []hooks.SuspensionEvent
}

func (r *recorder) hooks() hooks.FuncHooks {
	return hooks.FuncHooks{
		OnStrikeWarningFunc: func(ctx context.Context, e hooks.StrikeWarningEvent) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.warnings = append(r.warnings, e)
			return nil
		},
		OnSuspensionFunc: func(ctx context.Context, e hooks.SuspensionEvent) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.suspensions = append(r.suspensions, e)
			return nil
		},
	}
}

func testEscalation(t *testing.T, now *time.Time) (*Escalation, *recorder) {
	t.Helper()
	rec := &recorder{}
	e := NewEscalation(store.NewMemoryStore(),
		WithHooks(rec.hooks()),
		WithClock(func() time.Time { return *now }))
	return e, rec
}

func TestCheckMessage_CleanMessageAllowed(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e, rec := testEscalation(t, &now)

	v, err := e.CheckMessage(context.Background(), guard.User{ID: "u1"}, "see you at the park entrance at 3")
	if err != nil {
		t.Fatal(err)
	}
	if !v.Allowed {
		t.Errorf("clean message rejected: %+v", v)
	}
	if len(rec.warnings)+len(rec.suspensions) != 0 {
		t.Error("clean message fired hooks")
	}
}

func TestCheckMessage_PhoneNumberCreatesStrike(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e, rec := testEscalation(t, &now)
	user := guard.User{ID: "u1"}

	v, err := e.CheckMessage(context.Background(), user, "Call me at 555-123-4567")
	if err != nil {
		t.Fatal(err)
	}
	if v.Allowed {
		t.Fatal("phone number should be rejected")
	}
	if v.Reason != guard.ReasonContactInfo {
		t.Errorf("Reason = %q", v.Reason)
	}
	if v.Category != guard.CategoryPhone {
		t.Errorf("Category = %q", v.Category)
	}

	count, err := e.ActiveStrikes(context.Background(), user)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("active strikes = %d, want 1", count)
	}
	if len(rec.warnings) != 1 || len(rec.suspensions) != 0 {
		t.Errorf("hooks: %d warnings, %d suspensions", len(rec.warnings), len(rec.suspensions))
	}
	if rec.warnings[0].ActiveCount != 1 {
		t.Errorf("warning ActiveCount = %d", rec.warnings[0].ActiveCount)
	}
}

func TestCheckMessage_ThirdStrikeSuspends(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e, rec := testEscalation(t, &now)
	user := guard.User{ID: "u1"}
	ctx := context.Background()

	messages := []string{
		"call 555-123-4567",
		"email me someone@example.com",
		"find me @myhandle on insta",
	}

	var last guard.Verdict
	for i, msg := range messages {
		now = now.Add(time.Hour)
		v, err := e.CheckMessage(ctx, user, msg)
		if err != nil {
			t.Fatalf("message %d: %v", i+1, err)
		}
		if v.Allowed {
			t.Fatalf("message %d should be rejected", i+1)
		}
		last = v
	}

	if last.SuspendedUntil == nil {
		t.Fatal("third strike verdict missing SuspendedUntil")
	}
	wantUntil := now.Add(guard.SuspensionTerm)
	if !last.SuspendedUntil.Equal(wantUntil) {
		t.Errorf("SuspendedUntil = %v, want %v", last.SuspendedUntil, wantUntil)
	}

	// Exactly one notification per strike, and the third is the
	// suspension, not a warning.
	if len(rec.warnings) != 2 {
		t.Errorf("warnings = %d, want 2", len(rec.warnings))
	}
	if len(rec.suspensions) != 1 {
		t.Fatalf("suspensions = %d, want 1", len(rec.suspensions))
	}
	if rec.suspensions[0].ActiveCount != 3 {
		t.Errorf("suspension ActiveCount = %d", rec.suspensions[0].ActiveCount)
	}
}

func TestCheckMessage_SuspendedUserAccruesNoStrikes(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e, _ := testEscalation(t, &now)
	user := guard.User{ID: "u1"}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := e.CheckMessage(ctx, user, "call 555-123-4567"); err != nil {
			t.Fatal(err)
		}
	}

	v, err := e.CheckMessage(ctx, user, "my number is 555-987-6543")
	if err != nil {
		t.Fatal(err)
	}
	if v.Allowed {
		t.Fatal("suspended user's message should be rejected")
	}
	if v.Reason != guard.ReasonChatSuspended {
		t.Errorf("Reason = %q, want %q", v.Reason, guard.ReasonChatSuspended)
	}
	if v.SuspendedUntil == nil {
		t.Error("suspension verdict missing SuspendedUntil")
	}

	count, err := e.ActiveStrikes(ctx, user)
	if err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Errorf("active strikes = %d, want 3 (no strike while suspended)", count)
	}
}

func TestCheckMessage_SuspensionLiftsAfterTerm(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e, _ := testEscalation(t, &now)
	user := guard.User{ID: "u1"}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := e.CheckMessage(ctx, user, "call 555-123-4567"); err != nil {
			t.Fatal(err)
		}
	}

	now = now.Add(guard.SuspensionTerm + time.Minute)

	v, err := e.CheckMessage(ctx, user, "thanks, see you then")
	if err != nil {
		t.Fatal(err)
	}
	if !v.Allowed {
		t.Errorf("clean message after suspension term rejected: %+v", v)
	}
}

func TestCheckMessage_OldStrikesExpire(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e, rec := testEscalation(t, &now)
	user := guard.User{ID: "u1"}
	ctx := context.Background()

	if _, err := e.CheckMessage(ctx, user, "call 555-123-4567"); err != nil {
		t.Fatal(err)
	}
	if _, err := e.CheckMessage(ctx, user, "email someone@example.com"); err != nil {
		t.Fatal(err)
	}

	// The first two strikes age out of the rolling window.
	now = now.Add(31 * 24 * time.Hour)

	v, err := e.CheckMessage(ctx, user, "whatsapp me on 555-987-6543")
	if err != nil {
		t.Fatal(err)
	}
	if v.Allowed {
		t.Fatal("violation should be rejected")
	}
	if v.SuspendedUntil != nil {
		t.Error("expired strikes should not count toward suspension")
	}
	if len(rec.suspensions) != 0 {
		t.Errorf("suspensions = %d, want 0", len(rec.suspensions))
	}

	count, err := e.ActiveStrikes(ctx, user)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("active strikes = %d, want 1", count)
	}
}

func TestCheckMessage_StrikeExpiryMatchesWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e, _ := testEscalation(t, &now)
	user := guard.User{ID: "u1"}
	ctx := context.Background()

	if _, err := e.CheckMessage(ctx, user, "call 555-123-4567"); err != nil {
		t.Fatal(err)
	}

	now = now.Add(guard.StrikeTTL - time.Minute)
	count, _ := e.ActiveStrikes(ctx, user)
	if count != 1 {
		t.Errorf("strike expired early: count = %d", count)
	}

	now = now.Add(2 * time.Minute)
	count, _ = e.ActiveStrikes(ctx, user)
	if count != 0 {
		t.Errorf("strike outlived its window: count = %d", count)
	}
}

func TestClearStrikes_ForgivesUser(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e, _ := testEscalation(t, &now)
	user := guard.User{ID: "u1"}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := e.CheckMessage(ctx, user, "call 555-123-4567"); err != nil {
			t.Fatal(err)
		}
	}
	if err := e.ClearStrikes(ctx, user); err != nil {
		t.Fatal(err)
	}

	v, err := e.CheckMessage(ctx, user, "see you tomorrow")
	if err != nil {
		t.Fatal(err)
	}
	if !v.Allowed {
		t.Errorf("forgiven user still rejected: %+v", v)
	}
	count, _ := e.ActiveStrikes(ctx, user)
	if count != 0 {
		t.Errorf("strikes after clear = %d", count)
	}
}

func TestUserLock_StablePerUser(t *testing.T) {
	e := NewEscalation(store.NewMemoryStore())

	if e.userLock("u1") != e.userLock("u1") {
		t.Error("same user must map to the same lock")
	}
}

func TestCheckMessage_ConcurrentViolationsSingleSuspension(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e, rec := testEscalation(t, &now)
	user := guard.User{ID: "u1"}
	ctx := context.Background()

	const n = 10
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			msg := fmt.Sprintf("call me 555-123-%04d", i)
			if _, err := e.CheckMessage(ctx, user, msg); err != nil {
				t.Errorf("CheckMessage: %v", err)
			}
		}(i)
	}
	wg.Wait()

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.suspensions) != 1 {
		t.Errorf("suspensions = %d, want exactly 1", len(rec.suspensions))
	}
	// Once suspended, later messages are rejected before evaluation,
	// so strikes stop at the threshold.
	if len(rec.warnings) != guard.StrikeThreshold-1 {
		t.Errorf("warnings = %d, want %d", len(rec.warnings), guard.StrikeThreshold-1)
	}
}
