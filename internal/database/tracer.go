package database

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type counterKey struct{}

type queryStartKey struct{}

// QueryCounter counts the SQL statements executed under a context.
type QueryCounter struct {
	n atomic.Int64
}

// Count returns the number of statements recorded so far.
func (c *QueryCounter) Count() int64 {
	return c.n.Load()
}

// WithQueryCounter returns a context under which every traced statement
// increments c.
func WithQueryCounter(ctx context.Context, c *QueryCounter) context.Context {
	return context.WithValue(ctx, counterKey{}, c)
}

// QueryCounterFrom returns the counter attached to ctx, or nil.
func QueryCounterFrom(ctx context.Context) *QueryCounter {
	c, _ := ctx.Value(counterKey{}).(*QueryCounter)
	return c
}

// QueryTracer logs statements at debug level and feeds the QueryCounter
// carried by the query context, if any. It traces single queries and the
// statements of a batch.
type QueryTracer struct {
	logger zerolog.Logger
}

var (
	_ pgx.QueryTracer = (*QueryTracer)(nil)
	_ pgx.BatchTracer = (*QueryTracer)(nil)
)

// NewQueryTracer creates a tracer writing to logger.
func NewQueryTracer(logger zerolog.Logger) *QueryTracer {
	return &QueryTracer{
		logger: logger.With().Str("component", "sql").Logger(),
	}
}

// TraceQueryStart implements pgx.QueryTracer.
func (t *QueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	if c := QueryCounterFrom(ctx); c != nil {
		c.n.Add(1)
	}
	t.logger.Debug().Str("sql", data.SQL).Int("args", len(data.Args)).Msg("query started")
	return context.WithValue(ctx, queryStartKey{}, time.Now())
}

// TraceQueryEnd implements pgx.QueryTracer.
func (t *QueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	event := t.logger.Debug()
	if data.Err != nil {
		event = t.logger.Warn().Err(data.Err)
	}
	if start, ok := ctx.Value(queryStartKey{}).(time.Time); ok {
		event = event.Dur("duration", time.Since(start))
	}
	event.Str("command", data.CommandTag.String()).Msg("query finished")
}

// TraceBatchStart implements pgx.BatchTracer.
func (t *QueryTracer) TraceBatchStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceBatchStartData) context.Context {
	t.logger.Debug().Int("statements", data.Batch.Len()).Msg("batch started")
	return ctx
}

// TraceBatchQuery implements pgx.BatchTracer.
func (t *QueryTracer) TraceBatchQuery(ctx context.Context, _ *pgx.Conn, data pgx.TraceBatchQueryData) {
	if c := QueryCounterFrom(ctx); c != nil {
		c.n.Add(1)
	}
	if data.Err != nil {
		t.logger.Warn().Err(data.Err).Str("sql", data.SQL).Msg("batch query failed")
		return
	}
	t.logger.Debug().Str("sql", data.SQL).Msg("batch query finished")
}

// TraceBatchEnd implements pgx.BatchTracer.
func (t *QueryTracer) TraceBatchEnd(_ context.Context, _ *pgx.Conn, data pgx.TraceBatchEndData) {
	if data.Err != nil {
		t.logger.Warn().Err(data.Err).Msg("batch failed")
	}
}
