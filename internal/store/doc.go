// Package store defines the persistence interfaces and the query
// specification types the rest of the application programs against.
// Concrete implementations live under internal/platform.
package store
