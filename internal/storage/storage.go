package storage

import (
	"context"
	"errors"
)

// Namespace partitions a shopper's persisted state. Each domain store owns
// exactly one namespace and never touches another's.
type Namespace string

const (
	NSCart            Namespace = "cart"
	NSSelectedAddress Namespace = "address.selected"
	NSSavedAddresses  Namespace = "address.saved"
	NSSession         Namespace = "auth.session"
)

var ErrNotFound = errors.New("snapshot not found")

// Store is durable per-shopper key-value snapshot storage.
type Store interface {
	Get(ctx context.Context, shopper string, ns Namespace) ([]byte, error)
	Put(ctx context.Context, shopper string, ns Namespace, body []byte) error
	Delete(ctx context.Context, shopper string, ns Namespace) error
}
