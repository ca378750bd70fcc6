package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrConsumptionImmutable = errors.New("consumption entries cannot be changed once recorded")

// Consumption is a ledger entry. UnitPrice is the product price at the
// moment the entry was recorded.
type Consumption struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	TableSessionID uint            `gorm:"not null;index" json:"table_session_id"`
	TableSession   TableSession    `gorm:"foreignKey:TableSessionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	ProductID      uint            `gorm:"not null" json:"product_id"`
	Product        Product         `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Quantity       int             `gorm:"not null" json:"quantity"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	CreatedAt      time.Time       `gorm:"not null" json:"created_at"`
}

// Subtotal is Quantity x UnitPrice.
func (c Consumption) Subtotal() decimal.Decimal {
	return c.UnitPrice.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

func (c *Consumption) BeforeUpdate(tx *gorm.DB) error {
	return ErrConsumptionImmutable
}

func (c *Consumption) BeforeDelete(tx *gorm.DB) error {
	return ErrConsumptionImmutable
}
