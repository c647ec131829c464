package docstore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type firestoreCollection[T Document] struct {
	client *firestore.Client
	name   string
	decode DecodeFunc[T]
}

// NewFirestoreCollection reads and writes T as documents of the named
// collection, decoding snapshots through decode.
func NewFirestoreCollection[T Document](client *firestore.Client, name string, decode DecodeFunc[T]) Collection[T] {
	return &firestoreCollection[T]{client: client, name: name, decode: decode}
}

func (c *firestoreCollection[T]) Name() string {
	return c.name
}

func (c *firestoreCollection[T]) List(ctx context.Context, opts ...QueryOption) ([]T, error) {
	q := BuildQuery(opts...)
	query := c.client.Collection(c.name).Query
	for _, f := range q.Filters {
		query = query.Where(f.Field, "==", f.Value)
	}
	for _, o := range q.Orders {
		dir := firestore.Asc
		if o.Direction == Desc {
			dir = firestore.Desc
		}
		query = query.OrderBy(o.Field, dir)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	snaps, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.name, err)
	}

	result := make([]T, 0, len(snaps))
	for _, snap := range snaps {
		result = append(result, c.decode(snap.Ref.ID, Fields(snap.Data())))
	}
	return result, nil
}

func (c *firestoreCollection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	snap, err := c.client.Collection(c.name).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("get %s/%s: %w", c.name, id, err)
	}
	return c.decode(snap.Ref.ID, Fields(snap.Data())), nil
}

func (c *firestoreCollection[T]) Create(ctx context.Context, doc T) error {
	id := doc.DocumentID()
	if id == "" {
		return errors.New("docstore: document id is required")
	}
	_, err := c.client.Collection(c.name).Doc(id).Create(ctx, map[string]any(doc.Fields()))
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return ErrAlreadyExists
		}
		return fmt.Errorf("create %s/%s: %w", c.name, id, err)
	}
	return nil
}

func (c *firestoreCollection[T]) Update(ctx context.Context, id string, fields Fields) error {
	if len(fields) == 0 {
		_, err := c.Get(ctx, id)
		return err
	}

	updates := make([]firestore.Update, 0, len(fields))
	for key, value := range fields {
		if key == "id" {
			continue
		}
		updates = append(updates, firestore.Update{Path: key, Value: value})
	}

	if _, err := c.client.Collection(c.name).Doc(id).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("update %s/%s: %w", c.name, id, err)
	}
	return nil
}

func (c *firestoreCollection[T]) Delete(ctx context.Context, id string) error {
	if _, err := c.client.Collection(c.name).Doc(id).Delete(ctx, firestore.Exists); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("delete %s/%s: %w", c.name, id, err)
	}
	return nil
}
