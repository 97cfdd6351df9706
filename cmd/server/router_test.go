package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskloop/taskloop-api/internal/config"
	"github.com/taskloop/taskloop-api/internal/domain"
	"github.com/taskloop/taskloop-api/internal/service/auth"
	"github.com/taskloop/taskloop-api/internal/store"
)

// stubUserStore and stubTaskStore satisfy the store interfaces with
// canned responses; route-level tests only care about status codes and
// the middleware chain, not persistence.
type stubUserStore struct {
	user *domain.User
}

func (s *stubUserStore) Create(_ context.Context, _ *domain.User) error { return nil }

func (s *stubUserStore) GetByID(_ context.Context, _ uuid.UUID) (*domain.User, error) {
	if s.user == nil {
		return nil, store.ErrUserNotFound
	}
	return s.user, nil
}

func (s *stubUserStore) GetByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, store.ErrUserNotFound
}

func (s *stubUserStore) GetByUsername(_ context.Context, _ string) (*domain.User, error) {
	return nil, store.ErrUserNotFound
}

func (s *stubUserStore) Update(_ context.Context, _ *domain.User) error { return nil }

type stubTaskStore struct{}

func (s *stubTaskStore) Create(_ context.Context, _ *domain.Task) error { return nil }

func (s *stubTaskStore) GetByID(_ context.Context, _, _ uuid.UUID) (*domain.Task, error) {
	return nil, store.ErrTaskNotFound
}

func (s *stubTaskStore) Update(_ context.Context, _ *domain.Task) error { return nil }

func (s *stubTaskStore) Delete(_ context.Context, _, _ uuid.UUID) error {
	return store.ErrTaskNotFound
}

func (s *stubTaskStore) List(_ context.Context, _ uuid.UUID, _ store.TaskQuery) (*store.TaskPage, error) {
	return store.NewTaskPage(nil, 1, 10, 0), nil
}

func (s *stubTaskStore) Stats(_ context.Context, _ uuid.UUID, _ time.Time) (*store.TaskStats, error) {
	return &store.TaskStats{
		ByStatus:   map[string]int{},
		ByPriority: map[string]int{},
	}, nil
}

func newTestApplication(t *testing.T, user *domain.User) *application {
	t.Helper()

	tokenService := auth.NewTestTokenService(
		"test-secret-test-secret-test-secret!",
		time.Hour,
		time.Now,
	)
	hasher := auth.NewBcryptHasher(0)

	return &application{
		config: &config.Config{
			Server: config.ServerConfig{Port: 0, LogLevel: "error"},
		},
		logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		userStore:        &stubUserStore{user: user},
		taskStore:        &stubTaskStore{},
		tokenService:     tokenService,
		passwordHasher:   hasher,
		passwordVerifier: hasher,
	}
}

func TestRouterRouting(t *testing.T) {
	t.Parallel()

	user, err := domain.NewUser("casey", "casey@example.com", "hash", "Casey", "Reyes")
	require.NoError(t, err)

	app := newTestApplication(t, user)
	router := app.setupRouter()

	token, err := app.tokenService.GenerateToken(context.Background(), user.ID)
	require.NoError(t, err)

	tests := []struct {
		name       string
		method     string
		target     string
		token      string
		wantStatus int
	}{
		{"health check is public", http.MethodGet, "/health", "", http.StatusOK},
		{"profile requires token", http.MethodGet, "/api/auth/profile", "", http.StatusUnauthorized},
		{"tasks require token", http.MethodGet, "/api/tasks", "", http.StatusUnauthorized},
		{"profile with token", http.MethodGet, "/api/auth/profile", token, http.StatusOK},
		{"task listing with token", http.MethodGet, "/api/tasks", token, http.StatusOK},
		{"stats routes before task ID", http.MethodGet, "/api/tasks/stats", token, http.StatusOK},
		{"unknown task ID answers not found", http.MethodGet, "/api/tasks/" + uuid.NewString(), token, http.StatusNotFound},
		{"garbage token rejected", http.MethodGet, "/api/tasks", "not-a-jwt", http.StatusUnauthorized},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(tc.method, tc.target, nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}
