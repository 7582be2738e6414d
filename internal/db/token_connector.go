package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/pgm/pkg/pgm"
)

// TokenBasedConnector implements the Connector interface for cloud
// providers that authenticate via short-lived tokens (AWS IAM, Azure
// Entra ID). The token is acquired from a TokenProvider and used as the
// PostgreSQL password.
type TokenBasedConnector struct {
	config        *pgm.ConnectionConfig
	tokenProvider TokenProvider
	providerName  string
	onNotice      NoticeHandler
}

// NewTokenBasedConnector creates a connector that uses a TokenProvider
// for authentication. providerName is used in error and warning
// messages (e.g., "AWS IAM", "Azure").
func NewTokenBasedConnector(config *pgm.ConnectionConfig, tokenProvider TokenProvider, providerName string, onNotice NoticeHandler) *TokenBasedConnector {
	return &TokenBasedConnector{
		config:        config,
		tokenProvider: tokenProvider,
		providerName:  providerName,
		onNotice:      onNotice,
	}
}

func (c *TokenBasedConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	token, expiresOn, err := c.tokenProvider.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire %s token: %w", c.providerName, err)
	}

	if time.Until(expiresOn) < 5*time.Minute {
		fmt.Printf("Warning: %s token expires in %v\n", c.providerName, time.Until(expiresOn).Round(time.Second))
	}

	configWithToken := *c.config
	configWithToken.Password = token

	poolConfig, err := pgxpool.ParseConfig(BuildConnectionString(&configWithToken))
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection config: %w", err)
	}

	configurePool(poolConfig, c.onNotice)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, wrapConnectionError(err, c.config.Host, c.config.Port, c.config.Database)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, wrapConnectionError(err, c.config.Host, c.config.Port, c.config.Database)
	}

	return pool, nil
}
