package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/atis-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const batchSize = 50

// DBHandler is an slog.Handler that batches WARN+ records into the
// system_logs table. Failed logins and rejected transitions land there
// as an audit trail next to server errors.
type DBHandler struct {
	core  *dbCore
	attrs []slog.Attr
}

type dbCore struct {
	db       *gorm.DB
	minLevel slog.Level
	mu       sync.Mutex
	buffer   []models.SystemLog
	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
}

func NewDBHandler(db *gorm.DB, minLevel slog.Level) *DBHandler {
	core := &dbCore{
		db:       db,
		minLevel: minLevel,
		buffer:   make([]models.SystemLog, 0, batchSize),
		ticker:   time.NewTicker(5 * time.Second),
		done:     make(chan struct{}),
	}
	go core.flushLoop()
	return &DBHandler{core: core}
}

func (c *dbCore) flushLoop() {
	for {
		select {
		case <-c.ticker.C:
			c.flush()
		case <-c.done:
			c.flush()
			return
		}
	}
}

func (c *dbCore) flush() {
	c.mu.Lock()
	if len(c.buffer) == 0 {
		c.mu.Unlock()
		return
	}
	batch := c.buffer
	c.buffer = make([]models.SystemLog, 0, batchSize)
	c.mu.Unlock()

	// Logging through slog here would re-enter this handler.
	if err := c.db.CreateInBatches(batch, batchSize).Error; err != nil {
		r := slog.NewRecord(time.Now(), slog.LevelError, "failed to flush system logs to DB", 0)
		r.AddAttrs(slog.String("error", err.Error()), slog.Int("count", len(batch)))
		_ = StdoutHandler().Handle(context.Background(), r)
	}
}

// Flush writes buffered records synchronously.
func (h *DBHandler) Flush() {
	h.core.flush()
}

// Stop flushes what is buffered and ends the background loop.
func (h *DBHandler) Stop() {
	h.core.stopOnce.Do(func() {
		h.core.ticker.Stop()
		close(h.core.done)
	})
}

func (h *DBHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.core.minLevel
}

func (h *DBHandler) Handle(_ context.Context, record slog.Record) error {
	entry := models.SystemLog{
		Timestamp: record.Time.UTC(),
		Level:     record.Level.String(),
		Message:   record.Message,
	}

	extra := make(map[string]interface{})
	apply := func(a slog.Attr) bool {
		switch a.Key {
		case "request_id":
			entry.RequestID = a.Value.String()
		case "user":
			s := a.Value.String()
			entry.UserEmail = &s
		case "action":
			entry.Action = a.Value.String()
		case "error":
			entry.Error = a.Value.String()
		case "latency_ms":
			switch v := a.Value.Any().(type) {
			case float64:
				entry.LatencyMs = int(math.Round(v))
			case int64:
				entry.LatencyMs = int(v)
			}
		default:
			extra[a.Key] = a.Value.Any()
		}
		return true
	}
	for _, a := range h.attrs {
		apply(a)
	}
	record.Attrs(apply)

	entry.Extra = datatypes.JSON("{}")
	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			entry.Extra = datatypes.JSON(b)
		}
	}

	h.core.mu.Lock()
	h.core.buffer = append(h.core.buffer, entry)
	needFlush := len(h.core.buffer) >= batchSize
	h.core.mu.Unlock()

	if needFlush {
		go h.core.flush()
	}
	return nil
}

func (h *DBHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &DBHandler{core: h.core, attrs: merged}
}

// WithGroup is a no-op; system_logs has a flat layout.
func (h *DBHandler) WithGroup(name string) slog.Handler {
	return h
}
