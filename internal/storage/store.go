package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"foldspan/internal/folding"
)

// DocumentFolds is the cached fold computation for one file.
type DocumentFolds struct {
	Path        string
	Language    string
	ContentHash string
	Ranges      []folding.FoldRange
}

// Store persists computed fold ranges keyed by path and content hash, so
// a rescan can skip files whose content did not change.
type Store interface {
	// SaveDocument upserts a document snapshot, replacing any ranges
	// stored for the same path.
	SaveDocument(ctx context.Context, doc *DocumentFolds) error

	// GetDocument retrieves a cached document by path, or nil when the
	// path has never been stored.
	GetDocument(ctx context.Context, path string) (*DocumentFolds, error)

	// RemoveDocument drops a path and its ranges.
	RemoveDocument(ctx context.Context, path string) error

	Close() error
}

// HashContent returns the cache key for a file's raw content.
func HashContent(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
