package main

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"essaydesk/internal/correct"
	"essaydesk/internal/store"
	"essaydesk/internal/types"
)

type contextKey string

// EssayStore is the persistence the handlers need.
type EssayStore interface {
	Insert(ctx context.Context, e types.Essay) (int64, error)
	Get(ctx context.Context, id int64) (types.Essay, error)
	List(ctx context.Context, q store.Query) ([]types.Essay, error)
	Count(ctx context.Context) (int, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// App holds configuration and shared state for the HTTP handlers.
type App struct {
	IsProduction    bool
	Port            string
	CookieMaxAge    time.Duration
	StaticCacheAge  time.Duration
	Retention       time.Duration // zero keeps essays forever
	CleanupInterval time.Duration
	PDFFont         string // TrueType font for downloads; empty uses the core font
	RateLimitRPS    int
	RateLimitBurst  int

	Store     EssayStore
	Corrector correct.Corrector

	LimiterMap   map[string]*rate.Limiter
	LimiterMutex sync.Mutex
	StartTime    time.Time
}

// historyEntry is an essay prepared for the history page.
type historyEntry struct {
	types.Essay
	Excerpt string
}
