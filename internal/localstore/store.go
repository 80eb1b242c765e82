// Package localstore provides the durable local storage the client persists
// its session, UI state and editor draft into: JSON blobs under fixed keys.
//
// Absence of a key means "no persisted value", never an error.
package localstore

import (
	"github.com/rs/zerolog"
)

var storeLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	storeLogger = l
}

type Store interface {
	// Get returns the blob under key; ok is false when nothing is stored.
	Get(key string) (value []byte, ok bool, err error)

	Set(key string, value []byte) error

	// Delete removes key; deleting an absent key is a no-op.
	Delete(key string) error

	Close() error
}
