package agenda_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/agendaapi/agenda/internal/agenda/denylist"
	httpapi "github.com/agendaapi/agenda/internal/agenda/http"
	"github.com/agendaapi/agenda/internal/agenda/service"
	"github.com/agendaapi/agenda/internal/agenda/store/drivers/postgres"
	"github.com/agendaapi/agenda/pkg/jwtx"
)

/*
 * Common helpers for agenda end-to-end tests. The API runs in-process
 * against real Postgres and Redis containers, so the tests exercise the
 * actual SQL, the actual denylist TTLs and the full middleware chain.
 */

const (
	testDBUser = "agenda"
	testDBPass = "agenda-test"
	testDBName = "agenda_test"

	testJWTSecret = "e2e-secret-please-rotate"
	testIssuer    = "agenda-e2e"
)

// startPostgres launches a throwaway Postgres container and returns its DSN.
func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     testDBUser,
			"POSTGRES_PASSWORD": testDBPass,
			"POSTGRES_DB":       testDBName,
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		testDBUser, testDBPass, host, port.Port(), testDBName)
}

// startRedis launches a throwaway Redis container and returns its address.
func startRedis(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor: wait.ForLog("Ready to accept connections").
			WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("%s:%s", host, port.Port())
}

// startServer wires the full application stack onto an httptest server.
func startServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()

	db, err := postgres.Open(ctx, startPostgres(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.ApplyMigrations())

	client := redis.NewClient(&redis.Options{Addr: startRedis(t)})
	t.Cleanup(func() { _ = client.Close() })
	dl := denylist.NewRedisStore(client)

	codec := jwtx.NewCodec(testJWTSecret, testIssuer, time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := httpapi.NewRouter(codec, dl, "test", "e2e", db, logger)
	router.UserService = &service.UserService{Store: db, Codec: codec, Denylist: dl}
	router.ContactService = &service.ContactService{Store: db}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

var clientSeq atomic.Int64

// doReq performs a request against the test server. Each call carries a
// unique X-Forwarded-For so the per-IP rate limiter never interferes with
// unrelated scenarios.
func doReq(t *testing.T, srv *httptest.Server, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	n := clientSeq.Add(1)
	req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.%d.%d", n/255%255, n%255))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func register(t *testing.T, srv *httptest.Server, username, password string) {
	t.Helper()
	code, _ := doReq(t, srv, http.MethodPost, "/v1/users", "", map[string]string{
		"username": username, "password": password,
	})
	require.Equal(t, http.StatusCreated, code)
}

func login(t *testing.T, srv *httptest.Server, username, password string) string {
	t.Helper()
	code, env := doReq(t, srv, http.MethodPost, "/v1/users/login", "", map[string]string{
		"username": username, "password": password,
	})
	require.Equal(t, http.StatusOK, code)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}
