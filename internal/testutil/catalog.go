package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/atomicstack/pipeline-loader/internal/catalog"
)

// OpenCatalog opens an empty catalog in a temporary directory. It is closed
// when the test finishes.
func OpenCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.db")
	cat, err := catalog.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	t.Cleanup(func() { _ = cat.Close() })
	return cat
}

// SeededCatalog opens a temporary catalog filled with the demo production.
func SeededCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat := OpenCatalog(t)
	if _, err := cat.Seed(context.Background()); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	return cat
}
