package services_test

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/parlor-billing/billing"
	"github.com/yeremiapane/parlor-billing/config"
	"github.com/yeremiapane/parlor-billing/database"
	"github.com/yeremiapane/parlor-billing/models"
	"github.com/yeremiapane/parlor-billing/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var base = time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)

// setupTestDB opens a private file-backed sqlite store with the same DSN and
// pool size the service runs with.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
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
	return db
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type event struct {
	tenantID uint
	name     string
}

type recorder struct {
	mu     sync.Mutex
	events []event
}

func (r *recorder) Publish(tenantID uint, name string, _ interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event{tenantID: tenantID, name: name})
}

func (r *recorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.name)
	}
	return out
}

type fixture struct {
	db       *gorm.DB
	clock    *clock
	events   *recorder
	sessions *services.SessionService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupTestDB(t)
	c := &clock{now: base}
	rec := &recorder{}
	svc := services.NewSessionService(db, rec)
	svc.Now = c.Now
	return &fixture{db: db, clock: c, events: rec, sessions: svc}
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "want %s, got %s", want, got.String())
}

func (f *fixture) table(t *testing.T, tenantID uint, name string) models.Table {
	t.Helper()
	table := models.Table{TenantID: tenantID, Name: name, Type: models.TableTypeHall, Status: models.TableStatusIdle}
	require.NoError(t, f.db.Create(&table).Error)
	return table
}

func (f *fixture) method(t *testing.T, tenantID uint, m billing.Method) models.BillingMethod {
	t.Helper()
	bm := models.BillingMethod{TenantID: tenantID, Name: string(m.Kind())}
	require.NoError(t, bm.SetMethod(m))
	require.NoError(t, f.db.Create(&bm).Error)
	return bm
}

func (f *fixture) product(t *testing.T, tenantID uint, name, price string) models.Product {
	t.Helper()
	p := models.Product{TenantID: tenantID, Name: name, Price: d(price)}
	require.NoError(t, f.db.Create(&p).Error)
	return p
}

func (f *fixture) tableStatus(t *testing.T, id uint) string {
	t.Helper()
	var table models.Table
	require.NoError(t, f.db.First(&table, id).Error)
	return table.Status
}

func (f *fixture) activeSessions(t *testing.T, tableID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&models.TableSession{}).
		Where("table_id = ? AND status = ?", tableID, models.SessionStatusActive).
		Count(&n).Error)
	return n
}
