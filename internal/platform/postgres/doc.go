// Package postgres provides PostgreSQL-backed implementations of the
// interfaces in the store package, including the compiler that turns a
// declarative task query into owner-scoped, parameterized SQL.
package postgres
