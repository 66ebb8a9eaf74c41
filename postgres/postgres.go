// Package postgres implements a PostgreSQL-backed checkpoint store via pgx.
package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store implements stategraph.CheckpointStore using PostgreSQL.
type Store struct {
	db *pgxpool.Pool
}

// New creates a new Store backed by the given pgx connection pool.
func New(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}
