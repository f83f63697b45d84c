package testutil

import (
	"database/sql"
	"testing"

	"github.com/Mnpaulon/final-pd-acn4bv-paulon/internal/infrastructure/sqlite"
)

// OpenInMemoryDB abre una base SQLite en memoria con el esquema aplicado y
// las categorías por defecto sembradas. Se usa cache compartida para que las
// conexiones del pool vean la misma base. Se cierra con t.Cleanup.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	db, err := sqlite.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("abrir base de test: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}
