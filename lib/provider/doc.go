// Package provider defines the capability contract between the gateway and
// its backend data providers. The gateway itself never interprets queries;
// it resolves a model name to a handle and invokes dynamically named methods
// with positional arguments, so the whole contract fits in a few small
// interfaces.
//
// The package focuses on:
//   - Registry-based method dispatch (no runtime reflection)
//   - A single result representation for synchronous and asynchronous calls
//   - Provenance capabilities that let results be cached and normalized
//
// Key Components:
//
//   - IProvider: Resolves model names to IModelHandle instances. A provider
//     belongs to one Kind (relational or document).
//
//   - IInvokable: The dynamic-method surface shared by model handles and
//     records. Implementations keep an explicit method registry; unknown
//     method names settle as failed Outcomes.
//
//   - Outcome: The sum type for invocation results. Immediate outcomes are
//     already settled, Deferred outcomes settle from a goroutine. Callers
//     resolve both through Await, which also converts panics and context
//     cancellation into ordinary errors.
//
//   - IRecord / IAttributeExtractor / IJSONProjector: Result records carry
//     provenance (model name plus provider kind) used to derive their cache
//     key, and optionally a capability to reduce themselves to a plain,
//     transport-safe mapping.
//
// Implementations:
//
//   - memrel: An in-memory relational-style provider with schema-driven
//     tables and association getters. Used by the serve command and tests.
//     Available in "github.com/skaiser/dgate/lib/provider/memrel".
//
//   - memdoc: An in-memory document-style provider with collections of
//     free-form documents.
//     Available in "github.com/skaiser/dgate/lib/provider/memdoc".
//
//   - pgrel: A relational provider backed by PostgreSQL via pgx. Its calls
//     settle asynchronously, exercising the pending resolution path.
//     Available in "github.com/skaiser/dgate/lib/provider/pgrel".
package provider
