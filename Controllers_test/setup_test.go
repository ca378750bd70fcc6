package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeremiapane/parlor-billing/config"
	"github.com/yeremiapane/parlor-billing/database"
	"github.com/yeremiapane/parlor-billing/router"
	"github.com/yeremiapane/parlor-billing/services"
)

var base = time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	clock  *testClock
}

// setupTestServer wires the full router on a private sqlite file.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "parlor.db")
	db, err := gorm.Open(sqlite.Open(config.SQLiteDSN(path)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(config.SQLiteMaxConns)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	_, err = database.EnsureTenant(db, 1, "default")
	require.NoError(t, err)
	_, err = database.EnsureTenant(db, 2, "second")
	require.NoError(t, err)

	clock := &testClock{now: base}
	sessions := services.NewSessionService(db, nil)
	sessions.Now = clock.Now

	r := router.SetupRouter(router.Deps{
		Sessions:      sessions,
		Catalogue:     services.NewCatalogueService(db, nil),
		DefaultTenant: 1,
	})
	return &testServer{router: r, db: db, clock: clock}
}

type envelope struct {
	Status    bool            `json:"status"`
	Message   string          `json:"message"`
	ErrorCode string          `json:"error_code"`
	Data      json.RawMessage `json:"data"`
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, headers ...string) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func decodeData(t *testing.T, resp envelope, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(resp.Data, v))
}

// createID posts body to path and returns the id of the created record.
func (s *testServer) createID(t *testing.T, path string, body interface{}, headers ...string) uint {
	t.Helper()
	code, resp := s.do(t, http.MethodPost, path, body, headers...)
	require.Equal(t, http.StatusCreated, code, resp.Message)
	var out struct {
		ID uint `json:"id"`
	}
	decodeData(t, resp, &out)
	require.NotZero(t, out.ID)
	return out.ID
}
