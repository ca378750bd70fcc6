package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	TenantID  uint            `gorm:"not null;index" json:"tenant_id"`
	Tenant    Tenant          `gorm:"foreignKey:TenantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Name      string          `gorm:"type:varchar(255);not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Category  string          `gorm:"type:varchar(100)" json:"category"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`
}
