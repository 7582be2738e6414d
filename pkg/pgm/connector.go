package pgm

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connector abstracts database connection establishment.
// Implementations handle different authentication methods
// (standard password, AWS IAM, Google Cloud SQL IAM, Azure Entra ID).
type Connector interface {
	// Connect establishes a connection pool to the database.
	// The returned pool is owned by the caller and must be closed.
	Connect(ctx context.Context) (*pgxpool.Pool, error)
}
