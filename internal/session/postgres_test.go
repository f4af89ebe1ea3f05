package session

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var testDB *sql.DB

func setupTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, error) {
	var (
		dbName = "testdb"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:15",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), "5432/tcp")
	if err != nil {
		return dbContainer.Terminate, err
	}

	connStr := "postgres://" + dbUser + ":" + dbPwd + "@" + dbHost + ":" + dbPort.Port() + "/" + dbName + "?sslmode=disable"
	testDB, err = sql.Open("pgx", connStr)
	if err != nil {
		return dbContainer.Terminate, err
	}

	_, err = testDB.Exec(`
		CREATE TABLE IF NOT EXISTS draft_sessions (
			session_key TEXT PRIMARY KEY,
			record JSONB NOT NULL,
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return dbContainer.Terminate, err
	}

	return dbContainer.Terminate, nil
}

func TestMain(m *testing.M) {
	teardown, err := setupTestDB()
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}

	m.Run()

	if teardown != nil {
		if err := teardown(context.Background()); err != nil {
			log.Fatalf("could not teardown postgres container: %v", err)
		}
	}
}

func TestPostgresStoreRoundTrip(t *testing.T) {
	store := NewPostgresStore(testDB)
	ctx := context.Background()

	if err := store.Put(ctx, "pg-sess-1", sampleRecord()); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get(ctx, "pg-sess-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "Cotton Twill" || got.PopularProduct != "yes" {
		t.Errorf("record mangled: %+v", got)
	}
}

func TestPostgresStoreUpsert(t *testing.T) {
	store := NewPostgresStore(testDB)
	ctx := context.Background()

	if err := store.Put(ctx, "pg-sess-2", sampleRecord()); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	rec := sampleRecord()
	rec.Name = "Silk Satin"
	if err := store.Put(ctx, "pg-sess-2", rec); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}

	got, err := store.Get(ctx, "pg-sess-2")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "Silk Satin" {
		t.Errorf("upsert did not replace record, got %q", got.Name)
	}
}

func TestPostgresStoreMissingAndDelete(t *testing.T) {
	store := NewPostgresStore(testDB)
	ctx := context.Background()

	if _, err := store.Get(ctx, "pg-nobody"); !errors.Is(err, ErrNotStaged) {
		t.Fatalf("expected ErrNotStaged, got %v", err)
	}

	if err := store.Put(ctx, "pg-sess-3", sampleRecord()); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Delete(ctx, "pg-sess-3"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "pg-sess-3"); !errors.Is(err, ErrNotStaged) {
		t.Fatalf("expected ErrNotStaged after delete, got %v", err)
	}
}
