package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	apperrors "knowledge-agent/backend/pkg/errors"
	"knowledge-agent/backend/pkg/logger"
	"go.uber.org/zap"
)

// Row is one result record keyed by the query's RETURN aliases
type Row map[string]any

// Client executes graph queries. Query strings are opaque to it.
type Client interface {
	Read(ctx context.Context, query string, params map[string]any) ([]Row, error)
	Write(ctx context.Context, query string, params map[string]any) ([]Row, error)
}

// Neo4jClient runs every call in its own session and managed transaction
type Neo4jClient struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

// NewNeo4jClient wraps an already configured driver
func NewNeo4jClient(driver neo4j.DriverWithContext, log *zap.Logger) *Neo4jClient {
	return &Neo4jClient{
		driver: driver,
		logger: logger.OrNop(log),
	}
}

// Connect creates a driver for uri and verifies it can reach the server
func Connect(ctx context.Context, uri, user, password string, log *zap.Logger) (*Neo4jClient, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, apperrors.NewGraphUnavailable("connect", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, apperrors.NewGraphUnavailable("connect", err)
	}
	return NewNeo4jClient(driver, log), nil
}

// Close closes the underlying driver
func (c *Neo4jClient) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

// Read runs query in a read transaction
func (c *Neo4jClient) Read(ctx context.Context, query string, params map[string]any) ([]Row, error) {
	return c.run(ctx, neo4j.AccessModeRead, query, params)
}

// Write runs query in a write transaction
func (c *Neo4jClient) Write(ctx context.Context, query string, params map[string]any) ([]Row, error) {
	return c.run(ctx, neo4j.AccessModeWrite, query, params)
}

func (c *Neo4jClient) run(ctx context.Context, mode neo4j.AccessMode, query string, params map[string]any) ([]Row, error) {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: mode})
	defer session.Close(ctx)

	work := func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		records, err := result.Collect(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([]Row, 0, len(records))
		for _, record := range records {
			rows = append(rows, Row(record.AsMap()))
		}
		return rows, nil
	}

	var (
		out any
		err error
	)
	if mode == neo4j.AccessModeRead {
		out, err = session.ExecuteRead(ctx, work)
	} else {
		out, err = session.ExecuteWrite(ctx, work)
	}
	if err != nil {
		if neo4j.IsConnectivityError(err) {
			c.logger.Error("Graph store unreachable", zap.Error(err))
			return nil, apperrors.NewGraphUnavailable(accessModeName(mode), err)
		}
		return nil, apperrors.NewGraphQueryFailed(firstLine(query), err)
	}

	rows, _ := out.([]Row)
	return rows, nil
}

func accessModeName(mode neo4j.AccessMode) string {
	if mode == neo4j.AccessModeRead {
		return "read"
	}
	return "write"
}
