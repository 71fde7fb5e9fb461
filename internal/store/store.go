// Package store provides a generic document store: named collections of JSON
// documents with document-level CRUD and simple equality/membership queries.
// Two backends implement the same contract, BadgerDB and SQLite; query
// filtering happens in Go so both share exact semantics.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get for a missing document. Read paths treat it
// as a null result; write paths surface it as an error.
var ErrNotFound = errors.New("document not found")

// Op is a query operator.
type Op string

const (
	// OpEqual matches documents whose field equals the value.
	OpEqual Op = "=="
	// OpContains matches documents whose array field contains the value.
	OpContains Op = "array-contains"
)

// Query is a single-field filter over a collection. Field may be a dotted
// path into nested objects (e.g. "assignee.uid").
type Query struct {
	Field string
	Op    Op
	Value any
}

// Where is shorthand for constructing a Query.
func Where(field string, op Op, value any) Query {
	return Query{Field: field, Op: op, Value: value}
}

// Document is a stored document together with its id.
type Document struct {
	ID   string
	Data []byte
}

// Store is the document store contract. A single Set or Delete is atomic;
// nothing spanning multiple calls is.
type Store interface {
	Get(ctx context.Context, collection, id string) ([]byte, error)
	Set(ctx context.Context, collection, id string, doc []byte) error
	Delete(ctx context.Context, collection, id string) error
	Find(ctx context.Context, collection string, q Query) ([]Document, error)
	// DeleteBatch removes many documents in one backend batch. Used for mass
	// milestone/subtask removal during cascades.
	DeleteBatch(ctx context.Context, collection string, ids []string) error
	Close() error
}
