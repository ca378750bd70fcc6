package models

import "time"

const (
	TableTypePrivateRoom = "private_room"
	TableTypeHall        = "hall"

	TableStatusIdle  = "idle"
	TableStatusInUse = "in_use"
)

// Table is a rentable room or hall seat. Status is only changed by the
// session service and mirrors whether an active session exists.
type Table struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TenantID  uint      `gorm:"not null;index" json:"tenant_id"`
	Tenant    Tenant    `gorm:"foreignKey:TenantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Type      string    `gorm:"type:varchar(20);not null" json:"type"`
	Status    string    `gorm:"type:varchar(20);not null;default:'idle'" json:"status"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func ValidTableType(t string) bool {
	return t == TableTypePrivateRoom || t == TableTypeHall
}
