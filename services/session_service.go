package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/parlor-billing/billing"
	"github.com/yeremiapane/parlor-billing/models"
	"github.com/yeremiapane/parlor-billing/utils"
	"gorm.io/gorm"
)

const DefaultTxTimeout = 5 * time.Second

// SessionService runs the table session lifecycle: start, add consumption
// and checkout. Each mutating call is one transaction.
type SessionService struct {
	db        *gorm.DB
	tables    *TableStore
	ledger    *Ledger
	publisher EventPublisher

	TxTimeout time.Duration
	Now       func() time.Time
}

func NewSessionService(db *gorm.DB, publisher EventPublisher) *SessionService {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &SessionService{
		db:        db,
		tables:    NewTableStore(),
		ledger:    NewLedger(),
		publisher: publisher,
		TxTimeout: DefaultTxTimeout,
		Now:       time.Now,
	}
}

func (s *SessionService) now() time.Time {
	return s.Now().UTC()
}

// StartSession occupies tableID and opens an active session billed with
// billingMethodID. The reservation and the session row commit together.
func (s *SessionService) StartSession(ctx context.Context, tenantID, tableID, billingMethodID uint) (uint, error) {
	if tableID == 0 || billingMethodID == 0 {
		return 0, invalid(errors.New("table_id and billing_method_id are required"))
	}
	startedAt := s.now()

	session, err := RunInTx(ctx, s.db, s.TxTimeout, func(tx *gorm.DB) (*models.TableSession, error) {
		table, err := s.tables.Get(tx, tenantID, tableID)
		if err != nil {
			return nil, err
		}
		if _, _, err := loadMethod(tx, table.TenantID, billingMethodID); err != nil {
			return nil, err
		}
		if err := s.tables.TryReserve(tx, table.ID); err != nil {
			return nil, err
		}
		session := models.TableSession{
			TableID:         table.ID,
			BillingMethodID: billingMethodID,
			StartTime:       startedAt,
			Status:          models.SessionStatusActive,
		}
		if err := tx.Create(&session).Error; err != nil {
			return nil, persistenceError("create session", err)
		}
		return &session, nil
	})
	if err != nil {
		return 0, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"tenant_id":         tenantID,
		"table_id":          tableID,
		"session_id":        session.ID,
		"billing_method_id": billingMethodID,
	}).Info("table session started")
	s.publisher.Publish(tenantID, EventSessionStarted, map[string]interface{}{
		"table_id":   tableID,
		"session_id": session.ID,
		"start_time": session.StartTime,
	})
	return session.ID, nil
}

// AddConsumption records quantity units of productID against an active
// session at the product's current price.
func (s *SessionService) AddConsumption(ctx context.Context, tenantID, sessionID, productID uint, quantity int) (uint, error) {
	if quantity <= 0 {
		return 0, ErrInvalidQuantity
	}
	if sessionID == 0 || productID == 0 {
		return 0, invalid(errors.New("table_session_id and product_id are required"))
	}

	entry, err := RunInTx(ctx, s.db, s.TxTimeout, func(tx *gorm.DB) (*models.Consumption, error) {
		session, table, err := s.loadSession(tx, tenantID, sessionID)
		if err != nil {
			return nil, err
		}
		if session.Status != models.SessionStatusActive {
			return nil, ErrSessionNotActive
		}

		var product models.Product
		err = tx.Where("id = ? AND tenant_id = ?", productID, table.TenantID).First(&product).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		if err != nil {
			return nil, persistenceError("load product", err)
		}

		// Locks the session row against a concurrent checkout, which updates
		// the same row before it sums the ledger.
		res := tx.Model(&models.TableSession{}).
			Where("id = ? AND status = ?", session.ID, models.SessionStatusActive).
			Update("updated_at", s.now())
		if res.Error != nil {
			return nil, persistenceError("lock session", res.Error)
		}
		if res.RowsAffected != 1 {
			return nil, ErrSessionNotActive
		}

		return s.ledger.Append(tx, session.ID, product.ID, quantity, product.Price)
	})
	if err != nil {
		return 0, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"tenant_id":  tenantID,
		"session_id": sessionID,
		"product_id": productID,
		"quantity":   quantity,
		"unit_price": entry.UnitPrice.String(),
	}).Info("consumption recorded")
	s.publisher.Publish(tenantID, EventConsumptionAdded, map[string]interface{}{
		"session_id":     sessionID,
		"consumption_id": entry.ID,
		"product_id":     productID,
		"quantity":       quantity,
		"subtotal":       entry.Subtotal(),
	})
	return entry.ID, nil
}

// EndSession closes an active session and returns its bill. One timestamp
// is used both for the stored end time and for the billed duration.
func (s *SessionService) EndSession(ctx context.Context, tenantID, sessionID uint) (*Bill, error) {
	if sessionID == 0 {
		return nil, invalid(errors.New("session id is required"))
	}
	endedAt := s.now()

	bill, err := RunInTx(ctx, s.db, s.TxTimeout, func(tx *gorm.DB) (*Bill, error) {
		session, table, err := s.loadSession(tx, tenantID, sessionID)
		if err != nil {
			return nil, err
		}
		if session.Status != models.SessionStatusActive {
			return nil, ErrSessionNotActive
		}

		// Status and end time change in one statement, and only if the
		// session is still active, so a second checkout matches nothing.
		res := tx.Model(&models.TableSession{}).
			Where("id = ? AND status = ?", session.ID, models.SessionStatusActive).
			Updates(map[string]interface{}{
				"status":   models.SessionStatusCompleted,
				"end_time": endedAt,
			})
		if res.Error != nil {
			return nil, persistenceError("complete session", res.Error)
		}
		if res.RowsAffected != 1 {
			return nil, ErrSessionNotActive
		}

		_, method, err := loadMethod(tx, table.TenantID, session.BillingMethodID)
		if err != nil {
			return nil, err
		}
		elapsed := billing.ElapsedHours(session.StartTime, endedAt)
		timeCharge, err := billing.Calculate(method, elapsed)
		if err != nil {
			return nil, invalid(err)
		}
		consumptionCharge, err := s.ledger.TotalFor(tx, session.ID)
		if err != nil {
			return nil, err
		}
		total := timeCharge.Add(consumptionCharge)

		err = tx.Model(&models.TableSession{}).
			Where("id = ?", session.ID).
			Updates(map[string]interface{}{
				"time_charge":        decimal.NewNullDecimal(timeCharge),
				"consumption_charge": decimal.NewNullDecimal(consumptionCharge),
				"total_amount":       decimal.NewNullDecimal(total),
			}).Error
		if err != nil {
			return nil, persistenceError("store bill", err)
		}

		if err := s.tables.Release(tx, session.TableID); err != nil {
			return nil, err
		}

		return &Bill{
			SessionID:         session.ID,
			TableID:           session.TableID,
			StartTime:         session.StartTime,
			EndTime:           endedAt,
			ElapsedHours:      elapsed.Round(4),
			TimeCharge:        timeCharge,
			ConsumptionCharge: consumptionCharge,
			TotalAmount:       total,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"tenant_id":          tenantID,
		"table_id":           bill.TableID,
		"session_id":         bill.SessionID,
		"time_charge":        bill.TimeCharge.String(),
		"consumption_charge": bill.ConsumptionCharge.String(),
		"total_amount":       bill.TotalAmount.String(),
	}).Info("table session ended")
	s.publisher.Publish(tenantID, EventSessionEnded, bill)
	return bill, nil
}

// GetSession returns a session of tenantID with its ledger and, once
// completed, the stored bill.
func (s *SessionService) GetSession(ctx context.Context, tenantID, sessionID uint) (*SessionDetail, error) {
	db := s.db.WithContext(ctx)
	session, table, err := s.loadSession(db, tenantID, sessionID)
	if err != nil {
		return nil, err
	}
	bm, method, err := loadMethod(db, table.TenantID, session.BillingMethodID)
	if err != nil {
		return nil, err
	}
	entries, err := s.ledger.EntriesFor(db, []uint{session.ID})
	if err != nil {
		return nil, err
	}

	return &SessionDetail{
		ID:                session.ID,
		TableID:           table.ID,
		TableName:         table.Name,
		Status:            session.Status,
		StartTime:         session.StartTime,
		EndTime:           session.EndTime,
		BillingMethod:     methodInfo(*bm, method),
		Consumptions:      consumptionLines(entries[session.ID]),
		ConsumptionTotal:  sumEntries(entries[session.ID]),
		TimeCharge:        session.TimeCharge,
		ConsumptionCharge: session.ConsumptionCharge,
		TotalAmount:       session.TotalAmount,
	}, nil
}

// ListActiveTables returns every table of the tenant ordered by id, with
// the active session and its ledger for occupied tables. It reads without
// locks, so a concurrent checkout may not be reflected yet.
func (s *SessionService) ListActiveTables(ctx context.Context, tenantID uint) ([]TableOverview, error) {
	db := s.db.WithContext(ctx)
	now := s.now()

	var tables []models.Table
	if err := db.Where("tenant_id = ?", tenantID).Order("id ASC").Find(&tables).Error; err != nil {
		return nil, persistenceError("list tables", err)
	}
	if len(tables) == 0 {
		return []TableOverview{}, nil
	}

	tableIDs := make([]uint, 0, len(tables))
	for _, t := range tables {
		tableIDs = append(tableIDs, t.ID)
	}

	var sessions []models.TableSession
	err := db.Preload("BillingMethod").
		Where("status = ? AND table_id IN ?", models.SessionStatusActive, tableIDs).
		Find(&sessions).Error
	if err != nil {
		return nil, persistenceError("list active sessions", err)
	}

	byTable := make(map[uint]models.TableSession, len(sessions))
	sessionIDs := make([]uint, 0, len(sessions))
	for _, sess := range sessions {
		byTable[sess.TableID] = sess
		sessionIDs = append(sessionIDs, sess.ID)
	}

	entries, err := s.ledger.EntriesFor(db, sessionIDs)
	if err != nil {
		return nil, err
	}

	out := make([]TableOverview, 0, len(tables))
	for _, t := range tables {
		row := TableOverview{
			ID:           t.ID,
			Name:         t.Name,
			Type:         t.Type,
			Status:       t.Status,
			Consumptions: []ConsumptionLine{},
		}
		if sess, ok := byTable[t.ID]; ok {
			method, err := sess.BillingMethod.Method()
			if err != nil {
				return nil, persistenceError("decode billing method", err)
			}
			estimate, err := billing.Calculate(method, billing.ElapsedHours(sess.StartTime, now))
			if err != nil {
				return nil, persistenceError("estimate time charge", err)
			}
			row.Session = &ActiveSession{
				ID:                  sess.ID,
				StartTime:           sess.StartTime,
				BillingMethod:       methodInfo(sess.BillingMethod, method),
				ConsumptionTotal:    sumEntries(entries[sess.ID]),
				EstimatedTimeCharge: estimate,
			}
			row.Consumptions = consumptionLines(entries[sess.ID])
		}
		out = append(out, row)
	}
	return out, nil
}

// loadSession returns the session together with its table, provided the
// table belongs to tenantID.
func (s *SessionService) loadSession(db *gorm.DB, tenantID, sessionID uint) (*models.TableSession, *models.Table, error) {
	var session models.TableSession
	err := db.Preload("Table").First(&session, sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, nil, persistenceError("load session", err)
	}
	if session.Table.TenantID != tenantID {
		return nil, nil, ErrSessionNotFound
	}
	return &session, &session.Table, nil
}

// loadMethod resolves a billing method of tenantID and decodes its variant.
func loadMethod(db *gorm.DB, tenantID, methodID uint) (*models.BillingMethod, billing.Method, error) {
	var bm models.BillingMethod
	err := db.Where("id = ? AND tenant_id = ?", methodID, tenantID).First(&bm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrBillingMethodNotFound
	}
	if err != nil {
		return nil, nil, persistenceError("load billing method", err)
	}
	method, err := bm.Method()
	if err != nil {
		return nil, nil, persistenceError("decode billing method", err)
	}
	return &bm, method, nil
}
