package executor

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pgm/internal/logging"
	"github.com/vvka-141/pgm/pkg/pgm"
)

type failingConnector struct{ err error }

func (c *failingConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	return nil, c.err
}

func TestNewPoolExecutor_PanicsOnNilDependencies(t *testing.T) {
	assert.Panics(t, func() { NewPoolExecutor(nil, logging.NewNullLogger()) })
	assert.Panics(t, func() { NewPoolExecutor(&failingConnector{}, nil) })
}

func TestExecute_ConnectionFailureClassified(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	e := NewPoolExecutor(&failingConnector{err: cause}, logging.NewNullLogger())

	err := e.Execute(context.Background(), "SELECT 1;")
	require.Error(t, err)
	assert.ErrorIs(t, err, pgm.ErrConnectionFailed)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, pgm.ErrExecutionFailed)
}
