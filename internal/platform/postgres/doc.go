// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package. Stores are built
// on GORM running over the pgx driver; schema changes are applied with goose
// from the embedded migrations directory.
package postgres
