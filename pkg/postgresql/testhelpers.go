package postgresql

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const testImage = "postgres:16-alpine"

// TestHelper owns a throwaway PostgreSQL container for one integration suite.
type TestHelper struct {
	T         *testing.T
	Container testcontainers.Container
	Client    PostgreSQLClient
}

// NewTestHelperWithSetup starts a container, connects with the production
// client settings and prepares the schema with setup. Skipped under -short.
func NewTestHelperWithSetup(t *testing.T, setup func(ctx context.Context, client PostgreSQLClient) error) *TestHelper {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	config := Config{
		Database:         "trading_test",
		Username:         "test_user",
		Password:         "test_pass",
		SSLMode:          "disable",
		MaxConns:         20,
		MinConns:         1,
		MaxConnLifetime:  time.Hour,
		MaxConnIdleTime:  time.Minute,
		ConnectTimeout:   5 * time.Second,
		LockTimeout:      2 * time.Second,
		StatementTimeout: 30 * time.Second,
		ApplicationName:  "trading-core-test",
	}

	container, err := postgres.Run(ctx, testImage,
		postgres.WithDatabase(config.Database),
		postgres.WithUsername(config.Username),
		postgres.WithPassword(config.Password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2*time.Minute),
		),
	)
	require.NoError(t, err, "start postgres container")

	h := &TestHelper{T: t, Container: container}
	t.Cleanup(h.close)

	config.Host, err = container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)
	config.Port = port.Int()

	h.Client, err = NewClient(ctx, config)
	require.NoError(t, err, "connect to postgres container")

	if setup != nil {
		require.NoError(t, setup(ctx, h.Client), "prepare schema")
	}
	return h
}

func (h *TestHelper) close() {
	if h.Client != nil {
		h.Client.Close()
	}
	if err := h.Container.Terminate(context.Background()); err != nil {
		h.T.Logf("Failed to terminate test container: %v", err)
	}
}

// CleanupTables truncates tables, cascading to tables that reference them.
func (h *TestHelper) CleanupTables(tables ...string) {
	if len(tables) == 0 {
		return
	}
	query := fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", strings.Join(tables, ", "))
	h.ExecuteSQL(query)
}

// ExecuteSQL runs a statement and fails the test on error.
func (h *TestHelper) ExecuteSQL(sql string, args ...any) {
	_, err := h.Client.Exec(context.Background(), sql, args...)
	require.NoError(h.T, err)
}

// GetClient returns the client connected to the container.
func (h *TestHelper) GetClient() PostgreSQLClient {
	return h.Client
}
