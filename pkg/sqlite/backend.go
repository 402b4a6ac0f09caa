// Package sqlite exposes the SQLite menu store to programs that embed the
// menu service, while keeping the implementation internal.
package sqlite

import (
	"github.com/mesh-intelligence/dishes/internal/sqlite"
	"github.com/mesh-intelligence/dishes/pkg/types"
)

// Open opens the SQLite store in dataDir, rebuilding its database from the
// JSONL snapshot kept there. The caller must Close the store.
//
// Example:
//
//	st, err := sqlite.Open(".dishes-db")
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
func Open(dataDir string) (types.Store, error) {
	st, err := sqlite.Open(dataDir)
	if err != nil {
		return nil, err
	}
	return st, nil
}
