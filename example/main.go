// Package main demonstrates how to use the guard content-safety
// engine.
//
// This example shows:
// 1. Initializing the store, cache, and notification hooks
// 2. Running fast rule checks on submitted tasks
// 3. Escalating ambiguous content to the semantic moderator
// 4. Enforcing the chat strike and suspension policy
// 5. Exposing Prometheus metrics
package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	guard "github.com/khidma/guard"
	"github.com/khidma/guard/cache"
	"github.com/khidma/guard/chat"
	"github.com/khidma/guard/deep"
	"github.com/khidma/guard/engine"
	"github.com/khidma/guard/hooks"
	guardnats "github.com/khidma/guard/hooks/nats"
	"github.com/khidma/guard/metrics"
	"github.com/khidma/guard/store"
	sqlstore "github.com/khidma/guard/store/sql"

	"github.com/redis/go-redis/v9"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/lib/pq"              // PostgreSQL driver
)

func main() {
	ctx := context.Background()

	// ============================================================
	// Step 1: Initialize the Strike Store
	// ============================================================
	var st store.Store
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := sqlstore.Migrate(db, sqlstore.DialectPostgres); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		st = sqlstore.NewWithDB(db, sqlstore.DialectPostgres)
	} else {
		log.Printf("DATABASE_URL not set, using in-memory store")
		st = store.NewMemoryStore()
	}

	// ============================================================
	// Step 2: Initialize the Verdict Cache
	// ============================================================
	var verdictCache cache.Cache = cache.NewMemory()
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		defer rdb.Close()
		verdictCache = cache.NewRedis(rdb)
	}

	// ============================================================
	// Step 3: Initialize Notification Hooks
	// ============================================================
	var notifier hooks.Hooks = hooks.NopHooks{}
	if url := os.Getenv("NATS_URL"); url != "" {
		cfg := guardnats.DefaultConfig()
		cfg.URL = url
		n, err := guardnats.NewNotifier(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to NATS: %v", err)
		}
		defer n.Close()
		notifier = n
	}

	logHooks := hooks.FuncHooks{
		OnStrikeWarningFunc: func(ctx context.Context, e hooks.StrikeWarningEvent) error {
			log.Printf("[Hook] Warning for %s: strike %d/%d (%s)",
				e.Owner.ID, e.ActiveCount, guard.StrikeThreshold, e.ViolationType)
			return nil
		},
		OnSuspensionFunc: func(ctx context.Context, e hooks.SuspensionEvent) error {
			log.Printf("[Hook] %s suspended from chat until %s", e.Owner.ID, e.Until)
			return nil
		},
	}

	// ============================================================
	// Step 4: Assemble the Engine
	// ============================================================
	moderator := deep.NewModerator(
		deep.NewHTTPGenerator(deep.GeneratorConfig{
			APIKey: os.Getenv("GENAI_API_KEY"),
			Model:  os.Getenv("GENAI_MODEL"),
		}),
		deep.WithCache(verdictCache),
	)

	escalation := chat.NewEscalation(st,
		chat.WithHooks(hooks.ChainHooks{logHooks, notifier}))

	eng := engine.New(engine.Options{
		Moderator:  moderator,
		Escalation: escalation,
	})

	// ============================================================
	// Step 5: Check Submitted Tasks
	// ============================================================
	tasks := []string{
		"Need someone to clean my apartment this weekend",
		"Cherche quelqu'un pour garde d'animaux ce weekend",
		"selling c.o.c.a.i.n.e, best prices",
		"Looking for party supplies, the special kind",
	}
	for _, task := range tasks {
		v := eng.CheckDeep(ctx, task)
		switch {
		case v.Allowed && v.NeedsManualReview:
			log.Printf("REVIEW  %q (semantic check unavailable)", task)
		case v.Allowed:
			log.Printf("ALLOW   %q lang=%s", task, v.DetectedLanguage)
		default:
			log.Printf("REJECT  %q reason=%s category=%s", task, v.Reason, v.Category)
		}
	}

	// ============================================================
	// Step 6: Check Chat Messages
	// ============================================================
	user := guard.User{ID: "user-42"}
	messages := []string{
		"hi, when can you start?",
		"call me at 555-123-4567",
		"or email me someone@example.com",
		"find me @myhandle on insta",
		"you still there?",
	}
	for _, msg := range messages {
		v, err := eng.CheckChatMessage(ctx, user, msg)
		if err != nil {
			log.Fatalf("chat check: %v", err)
		}
		switch {
		case v.Allowed:
			log.Printf("CHAT OK      %q", msg)
		case v.Reason == guard.ReasonChatSuspended:
			log.Printf("CHAT BLOCKED %q (suspended until %s)", msg, v.SuspendedUntil)
		default:
			log.Printf("CHAT STRIKE  %q category=%s", msg, v.Category)
		}
	}

	// ============================================================
	// Step 7: Expose Metrics
	// ============================================================
	http.Handle("/metrics", metrics.Handler())
	log.Printf("metrics on :9090/metrics")
	if err := http.ListenAndServe(":9090", nil); err != nil {
		log.Fatalf("metrics server: %v", err)
	}
}
