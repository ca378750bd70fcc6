package services

import (
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/parlor-billing/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Ledger is the append-only record of what was consumed during a session.
type Ledger struct{}

func NewLedger() *Ledger { return &Ledger{} }

// Append records quantity units of productID at unitPrice.
func (l *Ledger) Append(tx *gorm.DB, sessionID, productID uint, quantity int, unitPrice decimal.Decimal) (*models.Consumption, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	entry := models.Consumption{
		TableSessionID: sessionID,
		ProductID:      productID,
		Quantity:       quantity,
		UnitPrice:      unitPrice,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return nil, persistenceError("append consumption", err)
	}
	return &entry, nil
}

// TotalFor sums quantity x unit price over every entry of the session. A
// session without entries totals zero. The entries are read with a locking
// read, so entries committed after the transaction's snapshot are counted.
func (l *Ledger) TotalFor(tx *gorm.DB, sessionID uint) (decimal.Decimal, error) {
	var entries []models.Consumption
	if err := lockedEntries(tx, sessionID).Find(&entries).Error; err != nil {
		return decimal.Zero, persistenceError("sum consumption", err)
	}
	return sumEntries(entries), nil
}

// EntriesFor returns the entries of each session, with products loaded,
// oldest first.
func (l *Ledger) EntriesFor(db *gorm.DB, sessionIDs []uint) (map[uint][]models.Consumption, error) {
	out := make(map[uint][]models.Consumption, len(sessionIDs))
	if len(sessionIDs) == 0 {
		return out, nil
	}
	var entries []models.Consumption
	err := db.Preload("Product").
		Where("table_session_id IN ?", sessionIDs).
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, persistenceError("load consumption", err)
	}
	for _, e := range entries {
		out[e.TableSessionID] = append(out[e.TableSessionID], e)
	}
	return out, nil
}

// lockedEntries selects the entries of a session FOR UPDATE. sqlite has no
// row locks and drops the clause.
func lockedEntries(tx *gorm.DB, sessionID uint) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("table_session_id = ?", sessionID)
}

func sumEntries(entries []models.Consumption) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Subtotal())
	}
	return total
}
