package test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/avelara/storefront/api"
	"github.com/avelara/storefront/config"
	"github.com/avelara/storefront/database"
	"github.com/avelara/storefront/rate"
	"github.com/jmoiron/sqlx"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/sirupsen/logrus"
)

// TestEnv runs the whole API against a throwaway Postgres container.
type TestEnv struct {
	DB     *sqlx.DB
	Server *httptest.Server
	URL    string

	client *http.Client
}

func NewTestEnv(t *testing.T, name string) (*TestEnv, error) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("constructing docker pool: %w", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker is not available: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "15-alpine",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_PASSWORD=postgres",
			"POSTGRES_DB=" + name,
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, fmt.Errorf("starting postgres container: %w", err)
	}
	_ = resource.Expire(180)

	cfg := config.DB{
		User:       "postgres",
		Password:   "postgres",
		Host:       resource.GetHostPort("5432/tcp"),
		Name:       name,
		DisableTLS: true,
	}

	var db *sqlx.DB
	if err := pool.Retry(func() error {
		var errOpen error
		db, errOpen = database.Open(cfg)
		if errOpen != nil {
			return errOpen
		}
		return db.Ping()
	}); err != nil {
		_ = pool.Purge(resource)
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		_ = pool.Purge(resource)
		return nil, fmt.Errorf("migrating: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	session := scs.New()

	mux := api.APIMux(api.APIConfig{
		CorsOrigin: "*",
		Log:        logger,
		DB:         db,
		Session:    session,
		Limiter:    rate.NewLimiter(100, 10, 100),
	})

	srv := httptest.NewServer(mux)

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("constructing cookie jar: %w", err)
	}
	client := srv.Client()
	client.Jar = jar

	t.Cleanup(func() {
		srv.Close()
		db.Close()
		_ = pool.Purge(resource)
	})

	return &TestEnv{
		DB:     db,
		Server: srv,
		URL:    srv.URL,
		client: client,
	}, nil
}

// Client returns an http client that carries the session cookie across
// requests.
func (te *TestEnv) Client() *http.Client {
	return te.client
}
