// Package testing starts throwaway archive backends for integration tests.
// Every helper skips the calling test in -short mode or when no container
// runtime is reachable.
package testing

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/elasticsearch"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresImage      = "postgres:17.5"
	elasticsearchImage = "docker.elastic.co/elasticsearch/elasticsearch:8.19.0"

	testDatabase = "news_hub_test_db"
)

type Postgres struct {
	ConnString string
}

type Elasticsearch struct {
	Address string
}

// NewPostgres starts postgres with every db/migrations/*.up.sql applied as an init script.
func NewPostgres(ctx context.Context, tb testing.TB) *Postgres {
	tb.Helper()
	requireContainers(tb, "postgres")

	migrations, err := upMigrations()
	if err != nil {
		tb.Fatalf("locate migrations: %v", err)
	}

	ctr, err := postgres.Run(ctx, postgresImage,
		postgres.WithDatabase(testDatabase),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.WithInitScripts(migrations...),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	testcontainers.CleanupContainer(tb, ctr)
	if err != nil {
		tb.Skipf("postgres container unavailable: %v", err)
	}

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		tb.Fatalf("postgres connection string: %v", err)
	}
	return &Postgres{ConnString: connStr}
}

// NewElasticsearch starts a single node without a password.
func NewElasticsearch(ctx context.Context, tb testing.TB) *Elasticsearch {
	tb.Helper()
	requireContainers(tb, "elasticsearch")

	ctr, err := elasticsearch.Run(ctx, elasticsearchImage,
		elasticsearch.WithPassword(""),
		testcontainers.WithWaitStrategy(
			wait.ForHTTP("/").
				WithPort("9200").
				WithStartupTimeout(60*time.Second),
		),
	)
	testcontainers.CleanupContainer(tb, ctr)
	if err != nil {
		tb.Skipf("elasticsearch container unavailable: %v", err)
	}

	host, err := ctr.Host(ctx)
	if err != nil {
		tb.Fatalf("elasticsearch host: %v", err)
	}
	port, err := ctr.MappedPort(ctx, "9200")
	if err != nil {
		tb.Fatalf("elasticsearch port: %v", err)
	}
	return &Elasticsearch{Address: fmt.Sprintf("http://%s:%s", host, port.Port())}
}

func requireContainers(tb testing.TB, name string) {
	tb.Helper()
	if testing.Short() {
		tb.Skipf("skipping %s container test in short mode", name)
	}
}

func upMigrations() ([]string, error) {
	_, file, _, _ := runtime.Caller(0)
	dir := filepath.Join(filepath.Dir(file), "..", "..", "db", "migrations")

	files, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no migrations found in %s", dir)
	}
	sort.Strings(files)
	return files, nil
}
