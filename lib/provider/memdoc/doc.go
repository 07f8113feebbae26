// Package memdoc implements an in-memory document-style provider.
// Collections hold free-form documents addressed by an "_id" field and
// spring into existence on first access. Collections expose findById,
// find(filter), all, first, count and insert; documents expose get, set
// and project. Documents implement the JSON-projection capability used by
// the response normalizer.
package memdoc
