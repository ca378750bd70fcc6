package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/parlor-billing/billing"
	"github.com/yeremiapane/parlor-billing/models"
	"github.com/yeremiapane/parlor-billing/utils"
	"gorm.io/datatypes"
)

// Bill is the result of closing a session. The same values are stored on
// the session row.
type Bill struct {
	SessionID         uint            `json:"session_id"`
	TableID           uint            `json:"table_id"`
	StartTime         time.Time       `json:"start_time"`
	EndTime           time.Time       `json:"end_time"`
	ElapsedHours      decimal.Decimal `json:"elapsed_hours"`
	TimeCharge        decimal.Decimal `json:"time_charge"`
	ConsumptionCharge decimal.Decimal `json:"consumption_charge"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
}

type MethodInfo struct {
	ID      uint           `json:"id"`
	Name    string         `json:"name"`
	Kind    billing.Kind   `json:"kind"`
	Display string         `json:"display"`
	Params  datatypes.JSON `json:"params"`
}

type ConsumptionLine struct {
	ID          uint            `json:"id"`
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	CreatedAt   time.Time       `json:"created_at"`
}

type ActiveSession struct {
	ID                  uint            `json:"id"`
	StartTime           time.Time       `json:"start_time"`
	BillingMethod       MethodInfo      `json:"billing_method"`
	ConsumptionTotal    decimal.Decimal `json:"consumption_total"`
	EstimatedTimeCharge decimal.Decimal `json:"estimated_time_charge"`
}

// TableOverview is one row of the floor dashboard.
type TableOverview struct {
	ID           uint              `json:"id"`
	Name         string            `json:"name"`
	Type         string            `json:"type"`
	Status       string            `json:"status"`
	Session      *ActiveSession    `json:"session"`
	Consumptions []ConsumptionLine `json:"consumptions"`
}

type SessionDetail struct {
	ID                uint                `json:"id"`
	TableID           uint                `json:"table_id"`
	TableName         string              `json:"table_name"`
	Status            string              `json:"status"`
	StartTime         time.Time           `json:"start_time"`
	EndTime           *time.Time          `json:"end_time"`
	BillingMethod     MethodInfo          `json:"billing_method"`
	Consumptions      []ConsumptionLine   `json:"consumptions"`
	ConsumptionTotal  decimal.Decimal     `json:"consumption_total"`
	TimeCharge        decimal.NullDecimal `json:"time_charge"`
	ConsumptionCharge decimal.NullDecimal `json:"consumption_charge"`
	TotalAmount       decimal.NullDecimal `json:"total_amount"`
}

// DescribeMethod renders a method the way the front desk shows it.
func DescribeMethod(m billing.Method) string {
	switch v := m.(type) {
	case billing.Hourly:
		return utils.FormatCurrency(v.RatePerHour) + "/hour"
	case billing.Fixed:
		return utils.FormatCurrency(v.Price) + "/session"
	case billing.Package:
		return fmt.Sprintf("%s/%sh +%s/hour",
			utils.FormatCurrency(v.PackagePrice), v.IncludedHours.String(), utils.FormatCurrency(v.OverageRatePerHour))
	}
	return ""
}

func methodInfo(bm models.BillingMethod, m billing.Method) MethodInfo {
	return MethodInfo{
		ID:      bm.ID,
		Name:    bm.Name,
		Kind:    bm.Kind,
		Display: DescribeMethod(m),
		Params:  bm.Params,
	}
}

func consumptionLines(entries []models.Consumption) []ConsumptionLine {
	lines := make([]ConsumptionLine, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, ConsumptionLine{
			ID:          e.ID,
			ProductID:   e.ProductID,
			ProductName: e.Product.Name,
			Quantity:    e.Quantity,
			UnitPrice:   e.UnitPrice,
			Subtotal:    e.Subtotal(),
			CreatedAt:   e.CreatedAt,
		})
	}
	return lines
}
