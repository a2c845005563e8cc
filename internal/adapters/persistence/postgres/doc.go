// Package postgres implements the persistence ports on PostgreSQL.
//
// Every query runs through [database.DB.Do], which adds the client span,
// metrics and circuit breaker. Driver errors are translated here:
// sql.ErrNoRows and zero affected rows become domain.ErrNotFound, a rejected
// call becomes domain.ErrUnavailable, and everything else is wrapped with the
// operation name.
package postgres
