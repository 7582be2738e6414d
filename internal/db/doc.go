// Package db handles connection string parsing, parameter resolution,
// and connection establishment against PostgreSQL.
//
// Connectors exist per authentication method: standard username and
// password, AWS RDS IAM, Google Cloud SQL IAM, and Azure Entra ID. The
// cloud connectors exchange provider credentials for short-lived tokens
// used as the database password. Connection failures are never retried
// automatically; compiled scripts are idempotent, so re-running the
// command is always safe.
package db
