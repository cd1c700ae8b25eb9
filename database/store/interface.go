// File: database/store/interface.go
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get, and by Delete on backends that can tell, when no document has the id.
var ErrNotFound = errors.New("document not found")

// Document is a stored record: its store-assigned id and its fields.
type Document struct {
	ID     string
	Fields map[string]any
}

// Filter is an equality predicate on a single field.
type Filter struct {
	Field string
	Value any
}

// Eq builds a Filter matching documents whose field equals value.
func Eq(field string, value any) *Filter {
	return &Filter{Field: field, Value: value}
}

// DocumentStore is the remote store access used by every service.
// Implementations hold no client-side cache; every call is a round-trip.
type DocumentStore interface {
	// Query returns every document of collection, or only those matching filter when it is non-nil.
	Query(ctx context.Context, collection string, filter *Filter) ([]Document, error)
	// Get returns one document by id, or ErrNotFound.
	Get(ctx context.Context, collection, id string) (Document, error)
	// Insert stores fields as a new document and returns the assigned id.
	Insert(ctx context.Context, collection string, fields map[string]any) (string, error)
	// Set creates or replaces the document at id.
	Set(ctx context.Context, collection, id string, fields map[string]any) error
	// Delete removes the document at id.
	Delete(ctx context.Context, collection, id string) error
}

// Pinger is implemented by stores that can report their connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}
