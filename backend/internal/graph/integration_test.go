package graph

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

// Integration tests run against a disposable Neo4j container and are skipped
// with -short or when Docker is unavailable.

const testNeo4jPassword = "integration-pass"

var testNeo4jURI string

func TestMain(m *testing.M) {
	flag.Parse()

	var container testcontainers.Container
	if !testing.Short() {
		var err error
		container, testNeo4jURI, err = startNeo4jContainer(context.Background())
		if err != nil {
			log.Printf("neo4j container unavailable, integration tests will skip: %v", err)
		}
	}

	code := m.Run()

	if container != nil {
		if err := container.Terminate(context.Background()); err != nil {
			log.Printf("error tearing down neo4j container: %v", err)
		}
	}
	os.Exit(code)
}

func startNeo4jContainer(ctx context.Context) (container testcontainers.Container, uri string, err error) {
	// Docker host discovery panics on machines without Docker
	defer func() {
		if r := recover(); r != nil {
			container, uri, err = nil, "", fmt.Errorf("docker unavailable: %v", r)
		}
	}()

	req := testcontainers.ContainerRequest{
		Image:        "neo4j:5-community",
		ExposedPorts: []string{"7687/tcp"},
		Env: map[string]string{
			"NEO4J_AUTH": "neo4j/" + testNeo4jPassword,
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("Started."),
			wait.ForListeningPort("7687/tcp"),
		).WithDeadline(2 * time.Minute),
	}

	container, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if container != nil {
			_ = container.Terminate(ctx)
		}
		return nil, "", fmt.Errorf("failed to start neo4j container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, "", fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "7687/tcp")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, "", fmt.Errorf("failed to get mapped port: %w", err)
	}

	return container, fmt.Sprintf("bolt://%s:%s", host, port.Port()), nil
}

// integrationRepository returns a repository on an emptied database
func integrationRepository(t *testing.T) (*Repository, *Neo4jClient) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test")
	}
	if testNeo4jURI == "" {
		t.Skip("Neo4j container not available")
	}

	ctx := context.Background()
	client, err := Connect(ctx, testNeo4jURI, "neo4j", testNeo4jPassword, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close(context.Background()) })

	_, err = client.Write(ctx, "MATCH (n) DETACH DELETE n", nil)
	require.NoError(t, err)

	repo := NewRepository(client, zap.NewNop())
	require.Zero(t, repo.EnsureSchema(ctx))
	return repo, client
}

func countRows(t *testing.T, client Client, query string, params map[string]any) int64 {
	t.Helper()
	rows, err := client.Read(context.Background(), query, params)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	return getInt64FromRow(rows[0], "c")
}

func TestIntegration_UpsertEntity_Idempotent(t *testing.T) {
	repo, client := integrationRepository(t)
	ctx := context.Background()

	first, err := repo.UpsertEntity(ctx, "Paris", "CONCEPT", map[string]any{})
	require.NoError(t, err)
	second, err := repo.UpsertEntity(ctx, "Paris", "CONCEPT", map[string]any{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), countRows(t, client,
		"MATCH (n {id: $id}) RETURN count(n) AS c", map[string]any{"id": first}))
}

func TestIntegration_UpsertEntity_MergesProperties(t *testing.T) {
	repo, client := integrationRepository(t)
	ctx := context.Background()

	id, err := repo.UpsertEntity(ctx, "Machine Learning", "CONCEPT", map[string]any{"confidence": 0.8, "source": "chat"})
	require.NoError(t, err)
	sameID, err := repo.UpsertEntity(ctx, "machine learning", "CONCEPT", map[string]any{"confidence": 1.0, "note": "x"})
	require.NoError(t, err)
	require.Equal(t, id, sameID)

	rows, err := client.Read(ctx, "MATCH (n:Entity {id: $id}) RETURN properties(n) AS p, labels(n) AS l", map[string]any{"id": id})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	props := getMapFromRow(rows[0], "p")
	assert.Equal(t, 1.0, props["confidence"])
	assert.Equal(t, "chat", props["source"])
	assert.Equal(t, "x", props["note"])
	assert.Equal(t, "machine learning", props["name"], "last write wins on name")
	assert.ElementsMatch(t, []string{"Entity", "CONCEPT"}, getStringSliceFromRow(rows[0], "l"))
}

func TestIntegration_UpsertRelationship_Gating(t *testing.T) {
	repo, client := integrationRepository(t)
	ctx := context.Background()

	a, err := repo.UpsertEntity(ctx, "a", "CONCEPT", nil)
	require.NoError(t, err)

	assert.False(t, repo.UpsertRelationship(ctx, a, "concept_b", "IS_A", map[string]any{}))
	assert.Equal(t, int64(0), countRows(t, client, "MATCH ()-[r]->() RETURN count(r) AS c", nil))
}

func TestIntegration_UpsertRelationship_Merges(t *testing.T) {
	repo, client := integrationRepository(t)
	ctx := context.Background()

	a, err := repo.UpsertEntity(ctx, "Learning", "CONCEPT", nil)
	require.NoError(t, err)
	b, err := repo.UpsertEntity(ctx, "subset", "CONCEPT", nil)
	require.NoError(t, err)

	require.True(t, repo.UpsertRelationship(ctx, a, b, "IS_A", map[string]any{"confidence": 0.7}))
	require.True(t, repo.UpsertRelationship(ctx, a, b, "IS_A", map[string]any{"confidence": 0.9}))

	assert.Equal(t, int64(1), countRows(t, client, "MATCH ()-[r:IS_A]->() RETURN count(r) AS c", nil))

	stats, err := repo.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalEntities)
	assert.Equal(t, int64(1), stats.TotalRelationships)
	assert.Equal(t, []string{"CONCEPT"}, stats.EntityTypes)

	set, err := repo.GetEntityConnections(ctx, a)
	require.NoError(t, err)
	require.Len(t, set.Outgoing, 1)
	assert.Empty(t, set.Incoming)
	assert.Equal(t, 0.9, set.Outgoing[0].Relationship.Properties["confidence"])
	assert.Equal(t, b, set.Outgoing[0].Node.ID)

	// "Learning is a learning" resolves both ends to the same entity
	require.True(t, repo.UpsertRelationship(ctx, a, a, "IS_A", nil))

	stats, err = repo.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalRelationships)
}

func TestIntegration_ProjectionReads(t *testing.T) {
	repo, _ := integrationRepository(t)
	ctx := context.Background()

	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		_, err := repo.UpsertEntity(ctx, name, "CONCEPT", map[string]any{"source": "chat"})
		require.NoError(t, err)
	}
	_, err := repo.UpsertEntity(ctx, "2024-01-02", "DATE", nil)
	require.NoError(t, err)

	snapshot, err := repo.GetGraph(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, snapshot.Nodes, 2)
	assert.Empty(t, snapshot.Relationships)

	matches, err := repo.Search(ctx, "amm", 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Gamma", matches[0].Name)

	// case-sensitive; ids are lowercase so "gamma" would still hit concept_gamma
	matches, err = repo.Search(ctx, "GAMMA", 10)
	require.NoError(t, err)
	assert.Empty(t, matches)

	// property values are searched too
	matches, err = repo.Search(ctx, "chat", 10)
	require.NoError(t, err)
	assert.Len(t, matches, 3)

	set, err := repo.GetEntityConnections(ctx, "concept_missing")
	require.NoError(t, err)
	assert.Nil(t, set.Entity)
}
