package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"
)

// TableSession is one billed occupancy of a table. EndTime and the charge
// columns are written together with Status=completed and never again.
type TableSession struct {
	ID                uint                `gorm:"primaryKey" json:"id"`
	TableID           uint                `gorm:"not null;index:idx_table_status" json:"table_id"`
	Table             Table               `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	BillingMethodID   uint                `gorm:"not null;index" json:"billing_method_id"`
	BillingMethod     BillingMethod       `gorm:"foreignKey:BillingMethodID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	StartTime         time.Time           `gorm:"not null" json:"start_time"`
	EndTime           *time.Time          `json:"end_time"`
	Status            string              `gorm:"type:varchar(20);not null;default:'active';index:idx_table_status" json:"status"`
	TimeCharge        decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"time_charge"`
	ConsumptionCharge decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"consumption_charge"`
	TotalAmount       decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"total_amount"`
	Consumptions      []Consumption       `gorm:"foreignKey:TableSessionID" json:"consumptions,omitempty"`
	CreatedAt         time.Time           `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time           `gorm:"not null" json:"updated_at"`
}
