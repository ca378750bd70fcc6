package services

import (
	"errors"

	"github.com/yeremiapane/parlor-billing/models"
	"gorm.io/gorm"
)

// TableStore owns the occupancy status of tables. Every method runs on the
// transaction handed in by the caller and touches nothing but tables.
type TableStore struct{}

func NewTableStore() *TableStore { return &TableStore{} }

// Get loads a table that belongs to tenantID.
func (ts *TableStore) Get(tx *gorm.DB, tenantID, tableID uint) (*models.Table, error) {
	var table models.Table
	err := tx.Where("id = ? AND tenant_id = ?", tableID, tenantID).First(&table).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTableNotFound
	}
	if err != nil {
		return nil, persistenceError("load table", err)
	}
	return &table, nil
}

// TryReserve flips a table from idle to in_use in a single conditional
// UPDATE. When concurrent callers race for the same table the database lets
// exactly one of them match the idle row; the others get ErrTableUnavailable.
func (ts *TableStore) TryReserve(tx *gorm.DB, tableID uint) error {
	res := tx.Model(&models.Table{}).
		Where("id = ? AND status = ?", tableID, models.TableStatusIdle).
		Update("status", models.TableStatusInUse)
	if res.Error != nil {
		return persistenceError("reserve table", res.Error)
	}
	if res.RowsAffected != 1 {
		return ErrTableUnavailable
	}
	return nil
}

// Release marks a table idle. The caller has already checked that the
// session being closed belongs to this table.
func (ts *TableStore) Release(tx *gorm.DB, tableID uint) error {
	res := tx.Model(&models.Table{}).
		Where("id = ?", tableID).
		Update("status", models.TableStatusIdle)
	if res.Error != nil {
		return persistenceError("release table", res.Error)
	}
	if res.RowsAffected != 1 {
		return ErrTableNotFound
	}
	return nil
}
