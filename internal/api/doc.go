// Package api implements the HTTP handlers for the task-tracking
// service: authentication and profile management, and owner-scoped
// task CRUD with filtered, paginated listing and statistics.
package api
