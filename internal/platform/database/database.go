// Package database owns the PostgreSQL connection pool and the guard every
// query runs through.
//
// Opening the pool (pgx driver through database/sql):
//
//	sqlDB, err := database.Open(ctx, cfg.Database)
//
// Wrapping it with tracing, metrics and a circuit breaker:
//
//	db := database.New(sqlDB, cfg.Database.CircuitBreaker, metrics, logger)
//	err := db.Do(ctx, "todos.get", func(ctx context.Context, q database.Querier) error {
//	    return q.QueryRowContext(ctx, query, id).Scan(&t.ID, ...)
//	})
//
// Schema migrations are embedded and applied with goose:
//
//	err := database.Migrate(ctx, sqlDB)
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/todo-service/internal/platform/config"
	"github.com/jsamuelsen11/todo-service/internal/platform/telemetry"
)

// checkerName is the key the pool reports under in readiness results.
const checkerName = "database"

// driverName is the database/sql driver used by Open.
var driverName = "pgx"

// ErrCircuitOpen is returned by Do when the breaker rejects a query without
// reaching the database. The underlying gobreaker error stays in the chain.
var ErrCircuitOpen = errors.New("database circuit breaker open")

// Querier is the subset of *sql.DB a query callback may use.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open creates the connection pool, applies pool limits and verifies
// connectivity within cfg.ConnectTimeout. The pool is closed again if the
// ping fails.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open(driverName, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

// DB wraps a connection pool with a circuit breaker, a client span per
// operation and db.client.operation metrics.
type DB struct {
	sqlDB   *sql.DB
	breaker *gobreaker.CircuitBreaker[struct{}]
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// New wraps sqlDB. If metrics is nil, metric recording is skipped. If logger
// is nil, breaker state changes are discarded.
func New(sqlDB *sql.DB, cfg config.CircuitBreakerConfig, metrics *telemetry.Metrics, logger *slog.Logger) *DB {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        checkerName,
		MaxRequests: toUint32(cfg.HalfOpenLimit),
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= cfg.MaxFailures
		},
		IsSuccessful: isSuccessful,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	return &DB{
		sqlDB:   sqlDB,
		breaker: cb,
		metrics: metrics,
		logger:  logger,
	}
}

// Do runs fn through the circuit breaker inside a client span named after
// operation (for example "todos.get"). Errors returned by fn are passed back
// unchanged so callers can still match sql.ErrNoRows. A rejected call returns
// an error matching ErrCircuitOpen and fn is not invoked.
func (d *DB) Do(ctx context.Context, operation string, fn func(ctx context.Context, q Querier) error) error {
	start := time.Now()

	ctx, span := startSpan(ctx, operation)
	defer span.End()

	_, err := d.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, fn(ctx, d.sqlDB)
	})
	if isBreakerRejection(err) {
		err = fmt.Errorf("%s: %w: %w", operation, ErrCircuitOpen, err)
	}

	finishSpan(span, err)
	d.recordMetrics(ctx, operation, start, err)

	return err
}

// Name identifies the pool in readiness results.
func (d *DB) Name() string {
	return checkerName
}

// HealthCheck reports the pool's availability. An open breaker fails fast
// without touching the network; otherwise the pool is pinged. A half-open
// breaker is reported as degraded even when the ping succeeds.
func (d *DB) HealthCheck(ctx context.Context) error {
	state := d.breaker.State()
	if state == gobreaker.StateOpen {
		return fmt.Errorf("%s: failing (circuit breaker open)", checkerName)
	}

	if err := d.sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%s: ping failed: %w", checkerName, err)
	}

	if state == gobreaker.StateHalfOpen {
		return fmt.Errorf("%s: degraded (circuit breaker half-open)", checkerName)
	}
	return nil
}

// Close closes the underlying pool.
func (d *DB) Close() error {
	return d.sqlDB.Close()
}

// Shutdown closes the pool when the DI container shuts down.
func (d *DB) Shutdown() error {
	d.logger.Info("closing database pool")
	return d.Close()
}

// isSuccessful decides which errors count against the breaker. Missing rows
// and callers that gave up are not store failures.
func isSuccessful(err error) bool {
	return err == nil ||
		errors.Is(err, sql.ErrNoRows) ||
		errors.Is(err, context.Canceled)
}

func isBreakerRejection(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func startSpan(ctx context.Context, operation string) (context.Context, trace.Span) {
	tracer := otel.GetTracerProvider().Tracer("database")

	return tracer.Start(ctx, operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			telemetry.AttrDBSystem.String(telemetry.DBSystem),
			telemetry.AttrDBOperation.String(operation),
		),
	)
}

func finishSpan(span trace.Span, err error) {
	if err == nil || errors.Is(err, sql.ErrNoRows) {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// recordMetrics records operation duration and count. Safe to call with nil
// metrics.
func (d *DB) recordMetrics(ctx context.Context, operation string, start time.Time, err error) {
	if d.metrics == nil {
		return
	}

	duration := time.Since(start).Seconds()

	attrs := metric.WithAttributes(
		telemetry.AttrDBSystem.String(telemetry.DBSystem),
		telemetry.AttrDBOperation.String(operation),
		telemetry.AttrResult.String(result(err)),
	)

	d.metrics.DBOperationDuration.Record(ctx, duration, attrs)
	d.metrics.DBOperationTotal.Add(ctx, 1, attrs)
}

func result(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, sql.ErrNoRows):
		return "not_found"
	case errors.Is(err, ErrCircuitOpen):
		return "circuit_open"
	default:
		return "error"
	}
}

// toUint32 safely converts a non-negative int to uint32, clamping at the
// uint32 maximum. Negative values are treated as zero.
func toUint32(v int) uint32 {
	if v <= 0 {
		return 0
	}
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
