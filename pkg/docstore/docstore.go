// Package docstore is the record store behind every ispdesk collection.
//
// Collections are addressed by opaque string ids and queried with equality
// filters, ordering and a limit. Two backends exist: typed SQL tables through
// gorm, and Firestore documents decoded from loosely typed fields.
package docstore

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("docstore: not found")
	ErrAlreadyExists = errors.New("docstore: already exists")
)

// Document is a record that can be written to any backend.
type Document interface {
	DocumentID() string
	Fields() Fields
}

// DecodeFunc rebuilds a record from its stored fields. It must not fail:
// missing or malformed values fall back to their defaults.
type DecodeFunc[T any] func(id string, fields Fields) T

// Collection is a typed view over one record collection.
type Collection[T Document] interface {
	Name() string
	List(ctx context.Context, opts ...QueryOption) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, doc T) error
	Update(ctx context.Context, id string, fields Fields) error
	Delete(ctx context.Context, id string) error
}

type Direction int

const (
	Asc Direction = iota
	Desc
)

type Filter struct {
	Field string
	Value any
}

type Order struct {
	Field     string
	Direction Direction
}

// Query is the backend independent form of a list request.
type Query struct {
	Filters []Filter
	Orders  []Order
	Limit   int
}

type QueryOption func(*Query)

func Where(field string, value any) QueryOption {
	return func(q *Query) {
		q.Filters = append(q.Filters, Filter{Field: field, Value: value})
	}
}

func OrderBy(field string, dir Direction) QueryOption {
	return func(q *Query) {
		q.Orders = append(q.Orders, Order{Field: field, Direction: dir})
	}
}

func Limit(n int) QueryOption {
	return func(q *Query) {
		if n > 0 {
			q.Limit = n
		}
	}
}

func BuildQuery(opts ...QueryOption) Query {
	var q Query
	for _, opt := range opts {
		if opt != nil {
			opt(&q)
		}
	}
	return q
}
