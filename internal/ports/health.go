package ports

import "context"

// HealthChecker reports whether one dependency of the service can serve
// traffic. *database.DB implements it for the PostgreSQL pool.
type HealthChecker interface {
	// Name keys the checker's entry in the readiness response.
	Name() string

	// HealthCheck returns nil when the dependency is usable. It must give up
	// when ctx is done.
	HealthCheck(ctx context.Context) error
}

// HealthRegistry collects checkers for the readiness endpoint.
type HealthRegistry interface {
	Register(checker HealthChecker)

	// CheckAll runs every checker and returns each result by name; nil
	// means healthy.
	CheckAll(ctx context.Context) map[string]error
}
