// Package pgrel implements a relational provider backed by PostgreSQL via
// pgx. The model layout comes from the same schema declarations the
// in-memory provider uses; table and column names originate from the schema
// (or are identifier-quoted when they name attributes from a request),
// values always travel as query parameters.
//
// All calls settle asynchronously as Deferred outcomes, which makes this
// the provider that exercises the gateway's pending resolution path against
// a real backend.
package pgrel
