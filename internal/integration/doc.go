// Package integration holds end-to-end tests that run every operation
// against a real PostgreSQL. Build with -tags integration and point
// TEST_DATABASE_URL at a scratch database.
package integration
