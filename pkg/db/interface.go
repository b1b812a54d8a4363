package db

import "database/sql"

// DBProvider is an interface for database clients that expose a sql.DB
// handle. The SQL results store works against this, so plain Postgres
// and Supabase-hosted Postgres are interchangeable behind it.
type DBProvider interface {
	DB() *sql.DB
}
