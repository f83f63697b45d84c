package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"golang.org/x/crypto/bcrypt"
)

// Categorías por defecto insertadas en el primer arranque (tabla vacía).
var defaultCategories = []string{"Electrónica", "Hogar", "Deportes", "Otros"}

// Querier abstrae *sql.DB y *sql.Tx para que los repos funcionen igual
// dentro y fuera de una transacción.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open abre (o crea) la base SQLite local, aplica el esquema idempotente y
// siembra las categorías por defecto si la tabla está vacía. Las llaves
// foráneas se activan vía DSN para que apliquen a todas las conexiones del pool.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		path = "database.db"
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	db, err := sql.Open("sqlite3", path+sep+"_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	// WAL puede no estar soportado en algunos contextos (memoria). Ignorar error.
	_, _ = db.Exec(`PRAGMA journal_mode=WAL`)

	if err := createSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := seedCategories(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// createSchema crea las tablas si no existen. No hay sistema de migraciones:
// el esquema es estable y la creación es idempotente.
func createSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS usuarios (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'usuario'
		)`,
		`CREATE TABLE IF NOT EXISTS categorias (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			nombre TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS productos (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			nombre TEXT NOT NULL,
			precio REAL NOT NULL,
			stock INTEGER NOT NULL,
			categoria_id INTEGER,
			FOREIGN KEY (categoria_id)
				REFERENCES categorias(id)
				ON DELETE SET NULL
				ON UPDATE CASCADE
		)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("crear esquema: %w", err)
		}
	}
	return nil
}

func seedCategories(db *sql.DB) error {
	var total int
	if err := db.QueryRow(`SELECT COUNT(*) FROM categorias`).Scan(&total); err != nil {
		return fmt.Errorf("contar categorias: %w", err)
	}
	if total > 0 {
		return nil
	}
	for _, nombre := range defaultCategories {
		if _, err := db.Exec(`INSERT INTO categorias (nombre) VALUES (?)`, nombre); err != nil {
			return fmt.Errorf("seed categorias: %w", err)
		}
	}
	return nil
}

// SeedAdmin crea el usuario administrador inicial cuando la tabla usuarios
// está vacía. Sin este bootstrap la gestión de usuarios (solo admin) sería
// inalcanzable. No hace nada si ya existe algún usuario.
func SeedAdmin(ctx context.Context, db *sql.DB, username, password string) error {
	var total int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM usuarios`).Scan(&total); err != nil {
		return fmt.Errorf("contar usuarios: %w", err)
	}
	if total > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin: %w", err)
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO usuarios (username, password_hash, role) VALUES (?, ?, 'admin')`,
		username, string(hash),
	)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}
