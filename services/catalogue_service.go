package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/parlor-billing/billing"
	"github.com/yeremiapane/parlor-billing/models"
	"github.com/yeremiapane/parlor-billing/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogueService handles the administrative records sessions refer to:
// tables, billing methods and products.
type CatalogueService struct {
	db        *gorm.DB
	publisher EventPublisher

	TxTimeout time.Duration
}

func NewCatalogueService(db *gorm.DB, publisher EventPublisher) *CatalogueService {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &CatalogueService{db: db, publisher: publisher, TxTimeout: DefaultTxTimeout}
}

// BillingMethodInput carries the fields of one variant. Fields belonging to
// another variant must be left empty.
type BillingMethodInput struct {
	Name               string           `json:"name" binding:"required"`
	Kind               string           `json:"kind" binding:"required"`
	Description        string           `json:"description"`
	RatePerHour        *decimal.Decimal `json:"rate_per_hour"`
	Price              *decimal.Decimal `json:"price"`
	IncludedHours      *decimal.Decimal `json:"included_hours"`
	PackagePrice       *decimal.Decimal `json:"package_price"`
	OverageRatePerHour *decimal.Decimal `json:"overage_rate_per_hour"`
}

// Method builds the variant named by Kind from the input fields.
func (in BillingMethodInput) Method() (billing.Method, error) {
	kind, err := billing.ParseKind(strings.ToLower(strings.TrimSpace(in.Kind)))
	if err != nil {
		return nil, err
	}

	fields := map[string]*decimal.Decimal{
		"rate_per_hour":         in.RatePerHour,
		"price":                 in.Price,
		"included_hours":        in.IncludedHours,
		"package_price":         in.PackagePrice,
		"overage_rate_per_hour": in.OverageRatePerHour,
	}
	var allowed []string
	switch kind {
	case billing.KindHourly:
		allowed = []string{"rate_per_hour"}
	case billing.KindFixed:
		allowed = []string{"price"}
	case billing.KindPackage:
		allowed = []string{"included_hours", "package_price", "overage_rate_per_hour"}
	}
	for name, v := range fields {
		if v != nil && !contains(allowed, name) {
			return nil, fmt.Errorf("%s billing method does not take %s", kind, name)
		}
	}
	for _, name := range allowed {
		if fields[name] == nil {
			return nil, fmt.Errorf("%s billing method requires %s", kind, name)
		}
	}

	var m billing.Method
	switch kind {
	case billing.KindHourly:
		m = billing.Hourly{RatePerHour: *in.RatePerHour}
	case billing.KindFixed:
		m = billing.Fixed{Price: *in.Price}
	case billing.KindPackage:
		m = billing.Package{
			IncludedHours:      *in.IncludedHours,
			PackagePrice:       *in.PackagePrice,
			OverageRatePerHour: *in.OverageRatePerHour,
		}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// requireTenant fails with ErrTenantNotFound unless tenantID exists.
func (cs *CatalogueService) requireTenant(ctx context.Context, tenantID uint) error {
	var n int64
	if err := cs.db.WithContext(ctx).Model(&models.Tenant{}).Where("id = ?", tenantID).Count(&n).Error; err != nil {
		return persistenceError("load tenant", err)
	}
	if n == 0 {
		return ErrTenantNotFound
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type ProductInput struct {
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
}

type TableInput struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required"`
}

func (cs *CatalogueService) ListTables(ctx context.Context, tenantID uint) ([]models.Table, error) {
	var tables []models.Table
	if err := cs.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Order("id ASC").Find(&tables).Error; err != nil {
		return nil, persistenceError("list tables", err)
	}
	return tables, nil
}

// CreateTable adds an idle table.
func (cs *CatalogueService) CreateTable(ctx context.Context, tenantID uint, in TableInput) (*models.Table, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid(errors.New("name is required"))
	}
	if !models.ValidTableType(in.Type) {
		return nil, invalid(fmt.Errorf("type must be %s or %s", models.TableTypePrivateRoom, models.TableTypeHall))
	}
	if err := cs.requireTenant(ctx, tenantID); err != nil {
		return nil, err
	}
	table := models.Table{
		TenantID: tenantID,
		Name:     name,
		Type:     in.Type,
		Status:   models.TableStatusIdle,
	}
	if err := cs.db.WithContext(ctx).Create(&table).Error; err != nil {
		return nil, persistenceError("create table", err)
	}
	utils.InfoLogger.Printf("New table created: %s (tenant=%d, type=%s)", table.Name, tenantID, table.Type)
	cs.publisher.Publish(tenantID, EventTableCreated, table)
	return &table, nil
}

// BillingMethodView is a stored method plus its display string.
type BillingMethodView struct {
	models.BillingMethod
	Display string `json:"display"`
}

func (cs *CatalogueService) ListBillingMethods(ctx context.Context, tenantID uint) ([]BillingMethodView, error) {
	var rows []models.BillingMethod
	if err := cs.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, persistenceError("list billing methods", err)
	}
	out := make([]BillingMethodView, 0, len(rows))
	for _, bm := range rows {
		m, err := bm.Method()
		if err != nil {
			return nil, persistenceError("decode billing method", err)
		}
		out = append(out, BillingMethodView{BillingMethod: bm, Display: DescribeMethod(m)})
	}
	return out, nil
}

func (cs *CatalogueService) CreateBillingMethod(ctx context.Context, tenantID uint, in BillingMethodInput) (*BillingMethodView, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid(errors.New("name is required"))
	}
	m, err := in.Method()
	if err != nil {
		return nil, invalid(err)
	}
	if err := cs.requireTenant(ctx, tenantID); err != nil {
		return nil, err
	}
	bm := models.BillingMethod{TenantID: tenantID, Name: name, Description: in.Description}
	if err := bm.SetMethod(m); err != nil {
		return nil, invalid(err)
	}
	if err := cs.db.WithContext(ctx).Create(&bm).Error; err != nil {
		return nil, persistenceError("create billing method", err)
	}
	return &BillingMethodView{BillingMethod: bm, Display: DescribeMethod(m)}, nil
}

// UpdateBillingMethod replaces a method's name, description and variant.
// Sessions still open with this method are billed with the new values at
// checkout.
func (cs *CatalogueService) UpdateBillingMethod(ctx context.Context, tenantID, id uint, in BillingMethodInput) (*BillingMethodView, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid(errors.New("name is required"))
	}
	m, err := in.Method()
	if err != nil {
		return nil, invalid(err)
	}

	return RunInTx(ctx, cs.db, cs.TxTimeout, func(tx *gorm.DB) (*BillingMethodView, error) {
		bm, _, err := loadMethod(tx, tenantID, id)
		if err != nil {
			return nil, err
		}
		bm.Name = name
		bm.Description = in.Description
		if err := bm.SetMethod(m); err != nil {
			return nil, invalid(err)
		}
		if err := tx.Omit(clause.Associations).Save(bm).Error; err != nil {
			return nil, persistenceError("update billing method", err)
		}
		return &BillingMethodView{BillingMethod: *bm, Display: DescribeMethod(m)}, nil
	})
}

// DeleteBillingMethod removes a method no session refers to. Completed
// sessions keep their reference, so a used method can never be deleted.
func (cs *CatalogueService) DeleteBillingMethod(ctx context.Context, tenantID, id uint) error {
	_, err := RunInTx(ctx, cs.db, cs.TxTimeout, func(tx *gorm.DB) (struct{}, error) {
		if _, _, err := loadMethod(tx, tenantID, id); err != nil {
			return struct{}{}, err
		}
		var refs int64
		if err := tx.Model(&models.TableSession{}).Where("billing_method_id = ?", id).Count(&refs).Error; err != nil {
			return struct{}{}, persistenceError("count sessions", err)
		}
		if refs > 0 {
			return struct{}{}, ErrBillingMethodInUse
		}
		if err := tx.Delete(&models.BillingMethod{}, id).Error; err != nil {
			return struct{}{}, persistenceError("delete billing method", err)
		}
		return struct{}{}, nil
	})
	return err
}

func (cs *CatalogueService) ListProducts(ctx context.Context, tenantID uint) ([]models.Product, error) {
	var products []models.Product
	if err := cs.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Order("id ASC").Find(&products).Error; err != nil {
		return nil, persistenceError("list products", err)
	}
	return products, nil
}

func (cs *CatalogueService) CreateProduct(ctx context.Context, tenantID uint, in ProductInput) (*models.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid(errors.New("name is required"))
	}
	if !in.Price.IsPositive() {
		return nil, invalid(errors.New("price must be greater than zero"))
	}
	if err := billing.ValidateAmount(in.Price); err != nil {
		return nil, invalid(err)
	}
	if err := cs.requireTenant(ctx, tenantID); err != nil {
		return nil, err
	}
	product := models.Product{
		TenantID: tenantID,
		Name:     name,
		Price:    in.Price,
		Category: strings.TrimSpace(in.Category),
	}
	if err := cs.db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, persistenceError("create product", err)
	}
	return &product, nil
}
