package database

import (
	"errors"

	"github.com/yeremiapane/parlor-billing/models"
	"github.com/yeremiapane/parlor-billing/utils"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema and the constraints gorm tags cannot
// express.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Tenant{},
		&models.Table{},
		&models.BillingMethod{},
		&models.Product{},
		&models.TableSession{},
		&models.Consumption{},
	)
	if err != nil {
		return err
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	return ExecuteConstraints(db)
}

// ExecuteConstraints adds a unique index allowing at most one active session
// per table, behind the conditional reservation done by services.TableStore.
func ExecuteConstraints(db *gorm.DB) error {
	switch db.Dialector.Name() {
	case "sqlite":
		return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS uniq_active_session_per_table
			ON table_sessions (table_id) WHERE status = 'active'`).Error
	case "mysql":
		if db.Migrator().HasColumn(&models.TableSession{}, "active_table_id") {
			return nil
		}
		err := db.Exec(`ALTER TABLE table_sessions
			ADD COLUMN active_table_id BIGINT UNSIGNED
				AS (IF(status = 'active', table_id, NULL)) STORED,
			ADD UNIQUE INDEX uniq_active_session_per_table (active_table_id)`).Error
		if err != nil {
			return err
		}
		utils.InfoLogger.Println("Active session constraint created.")
	}
	return nil
}

// EnsureTenant creates the tenant with the given id when it does not exist.
func EnsureTenant(db *gorm.DB, id uint, name string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := db.First(&tenant, id).Error
	if err == nil {
		return &tenant, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	tenant = models.Tenant{ID: id, Name: name}
	if err := db.Create(&tenant).Error; err != nil {
		return nil, err
	}
	utils.InfoLogger.Printf("Tenant %d (%s) created", tenant.ID, tenant.Name)
	return &tenant, nil
}
