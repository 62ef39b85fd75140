package output

import "context"

// OptionStore is the host's generic key/value configuration facility.
type OptionStore interface {
	// Get returns the raw value stored under key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set overwrites the value stored under key in a single write.
	Set(ctx context.Context, key string, value []byte) error
}
