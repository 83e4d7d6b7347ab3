package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	handler "github.com/healcome/fitness/internal/adapters/handler/http"
	repo "github.com/healcome/fitness/internal/adapters/repository/postgres"
	"github.com/healcome/fitness/internal/core/services"
	"github.com/healcome/fitness/internal/core/token"
)

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	dbName := "testdb"
	user := "user"
	password := "password"

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		fullPath := filepath.Join(dirPath, entry.Name())
		content, err := os.ReadFile(fullPath)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		_, err = db.Exec(string(content))
		if err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	DBContainer testcontainers.Container
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()
	ctx := context.Background()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)

	err = applyMigrations(db)
	require.NoError(t, err)

	userRepo := repo.NewUserRepository(db)
	sessionRepo := repo.NewSessionRepository(db)
	gymRepo := repo.NewGymRepository(db)
	routineRepo := repo.NewRoutineRepository(db)
	logRepo := repo.NewWorkoutLogRepository(db)

	codec := token.NewCodec([]byte("test-secret"), 15*time.Minute)
	cookies := handler.NewCookieManager(false, 15*time.Minute, 2*time.Hour)

	authSvc := services.NewAuthService(userRepo, sessionRepo, codec)
	gymSvc := services.NewGymService(gymRepo)
	routineSvc := services.NewRoutineService(routineRepo, gymRepo, logRepo)
	logSvc := services.NewWorkoutLogService(logRepo)
	userSvc := services.NewUserService(userRepo)

	router := handler.NewHandler(
		handler.NewAuthHandler(authSvc, cookies),
		handler.NewAuthMiddleware(authSvc, cookies),
		handler.NewGymHandler(gymSvc),
		handler.NewRoutineHandler(routineSvc),
		handler.NewWorkoutLogHandler(logSvc),
		handler.NewUserHandler(userSvc),
	)

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		DBContainer: dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

// doJSON sends a request with an optional JSON body and the given cookies.
func (app *TestApp) doJSON(t *testing.T, method, path string, payload any, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, app.Server.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}

// signupAndLogin registers a fresh user and returns the two auth cookies
// the login response set.
func (app *TestApp) signupAndLogin(t *testing.T, email, password string) (access, refresh *http.Cookie) {
	t.Helper()

	creds := map[string]string{"email": email, "password": password}
	resp := app.doJSON(t, http.MethodPost, "/auth/signup", creds)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = app.doJSON(t, http.MethodPost, "/auth/login", creds)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, c := range resp.Cookies() {
		switch c.Name {
		case "accessToken":
			access = c
		case "refreshToken":
			refresh = c
		}
	}
	require.NotNil(t, access, "accessToken cookie should be set")
	require.NotNil(t, refresh, "refreshToken cookie should be set")
	return access, refresh
}

func (app *TestApp) sessionCount(t *testing.T) int {
	t.Helper()
	var n int
	err := app.DB.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&n)
	require.NoError(t, err)
	return n
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
