// Package memrel implements an in-memory relational-style provider. It
// exists so the gateway can run without an external database: the serve
// command seeds it with demo data and the test suites use it as the
// reference relational backend.
//
// Model handles expose findById, where, all, first, count and insert.
// Rows expose get, set, attributes and one generated getter per schema
// association (e.g. a hasMany "parents" association yields getParents).
// All methods complete synchronously as Immediate outcomes.
package memrel
