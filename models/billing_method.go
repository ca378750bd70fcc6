package models

import (
	"time"

	"github.com/yeremiapane/parlor-billing/billing"
	"gorm.io/datatypes"
)

// BillingMethod stores one billing.Method variant. Kind selects the variant
// and Params holds only that variant's fields.
type BillingMethod struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	TenantID    uint           `gorm:"not null;index" json:"tenant_id"`
	Tenant      Tenant         `gorm:"foreignKey:TenantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Name        string         `gorm:"type:varchar(100);not null" json:"name"`
	Kind        billing.Kind   `gorm:"type:varchar(20);not null" json:"kind"`
	Params      datatypes.JSON `gorm:"not null" json:"params"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
}

// Method decodes the stored variant.
func (bm *BillingMethod) Method() (billing.Method, error) {
	return billing.DecodeParams(bm.Kind, bm.Params)
}

// SetMethod replaces Kind and Params with m.
func (bm *BillingMethod) SetMethod(m billing.Method) error {
	raw, err := billing.EncodeParams(m)
	if err != nil {
		return err
	}
	bm.Kind = m.Kind()
	bm.Params = datatypes.JSON(raw)
	return nil
}
