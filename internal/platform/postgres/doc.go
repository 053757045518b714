// Package postgres contains the PostgreSQL implementations of the store
// interfaces. All implementations accept a store.DBTX so they run
// against either a pooled connection or a caller-managed transaction,
// and map driver errors onto the store error taxonomy.
package postgres
