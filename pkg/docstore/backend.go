package docstore

import (
	"cloud.google.com/go/firestore"
	"gorm.io/gorm"
)

const (
	BackendSQL       = "sql"
	BackendFirestore = "firestore"
)

// Backend holds the open connection of whichever store is configured.
type Backend struct {
	Kind      string
	DB        *gorm.DB
	Firestore *firestore.Client
}

func NewSQLBackend(conn *gorm.DB) *Backend {
	return &Backend{Kind: BackendSQL, DB: conn}
}

func NewFirestoreBackend(client *firestore.Client) *Backend {
	return &Backend{Kind: BackendFirestore, Firestore: client}
}

// For returns the collection named name on the configured backend.
func For[T Document](b *Backend, name string, decode DecodeFunc[T]) Collection[T] {
	if b.Kind == BackendFirestore {
		return NewFirestoreCollection[T](b.Firestore, name, decode)
	}
	return NewGormCollection[T](b.DB, name)
}
