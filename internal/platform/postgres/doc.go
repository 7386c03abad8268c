// Package postgres contains the PostgreSQL implementations of the store
// contracts, running over database/sql with the pgx stdlib driver.
package postgres
