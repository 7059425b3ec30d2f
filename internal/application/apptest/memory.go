// Package apptest repositorios en memoria para los tests de casos de uso.
package apptest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// DB estado compartido por todos los repositorios en memoria.
type DB struct {
	mu        sync.Mutex
	Companies map[string]*entity.Company
	Users     map[string]*entity.User
	Products  map[string]*entity.Product
	Suppliers map[string]*entity.Supplier
	Purchases map[string]*entity.Purchase
	Sales     map[string]*entity.Sale
	Plans     map[string]*entity.Plan
	Subs      map[string]*entity.Subscription
	Payments  map[string]*entity.PaymentTransaction
	UserPerms map[string]map[string]bool
	RolePerms map[string]map[string]bool
}

// NewDB base vacía.
func NewDB() *DB {
	return &DB{
		Companies: map[string]*entity.Company{},
		Users:     map[string]*entity.User{},
		Products:  map[string]*entity.Product{},
		Suppliers: map[string]*entity.Supplier{},
		Purchases: map[string]*entity.Purchase{},
		Sales:     map[string]*entity.Sale{},
		Plans:     map[string]*entity.Plan{},
		Subs:      map[string]*entity.Subscription{},
		Payments:  map[string]*entity.PaymentTransaction{},
		UserPerms: map[string]map[string]bool{},
		RolePerms: map[string]map[string]bool{},
	}
}

// Stock stock actual del producto (0 si no existe).
func (db *DB) Stock(productID string) int {
	db.mu.Lock()
	defer db.mu.Unlock()
	if p, ok := db.Products[productID]; ok {
		return p.Stock
	}
	return 0
}

func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

// ──────────────────────────────────────────────────────────────────────────────
// Companies
// ──────────────────────────────────────────────────────────────────────────────

type CompanyRepo struct{ db *DB }

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	r.db.Companies[c.ID] = clone(c)
	return nil
}

func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return clone(r.db.Companies[id]), nil
}

func (r *CompanyRepo) GetByUser(_ context.Context, userID string) (*entity.Company, error) {
	for _, c := range r.db.Companies {
		if c.OwnerID == userID {
			return clone(c), nil
		}
	}
	if u, ok := r.db.Users[userID]; ok && u.CompanyID != nil {
		return clone(r.db.Companies[*u.CompanyID]), nil
	}
	return nil, nil
}

func (r *CompanyRepo) ListByUser(_ context.Context, userID string) ([]*entity.Company, error) {
	var out []*entity.Company
	u := r.db.Users[userID]
	for _, c := range r.db.Companies {
		if c.OwnerID == userID || (u != nil && u.CompanyIDValue() == c.ID) {
			out = append(out, clone(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}


func (r *CompanyRepo) Update(_ context.Context, c *entity.Company) error {
	if _, ok := r.db.Companies[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.db.Companies[c.ID] = clone(c)
	return nil
}

func (r *CompanyRepo) UpdateLogo(_ context.Context, id, logoURL string) error {
	c, ok := r.db.Companies[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.LogoURL = logoURL
	return nil
}

func (r *CompanyRepo) Delete(_ context.Context, id string) error {
	delete(r.db.Companies, id)
	return nil
}

func (r *CompanyRepo) ListWithSales(_ context.Context) ([]*entity.Company, error) {
	seen := map[string]bool{}
	var out []*entity.Company
	for _, s := range r.db.Sales {
		if !seen[s.CompanyID] {
			seen[s.CompanyID] = true
			if c, ok := r.db.Companies[s.CompanyID]; ok {
				out = append(out, clone(c))
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *CompanyRepo) ListSummaries(_ context.Context) ([]repository.CompanySummary, error) {
	var out []repository.CompanySummary
	for _, c := range r.db.Companies {
		n := 0
		for _, p := range r.db.Products {
			if p.CompanyID == c.ID {
				n++
			}
		}
		out = append(out, repository.CompanySummary{Company: *c, ProductsCount: n})
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Users y permisos
// ──────────────────────────────────────────────────────────────────────────────

type UserRepo struct{ db *DB }

var _ repository.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	for _, other := range r.db.Users {
		if strings.EqualFold(other.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.db.Users[u.ID] = clone(u)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return clone(r.db.Users[id]), nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.db.Users {
		if strings.EqualFold(u.Email, email) {
			return clone(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepo) GetByDocument(_ context.Context, doc string) (*entity.User, error) {
	for _, u := range r.db.Users {
		if doc != "" && u.DocumentNumber == doc {
			return clone(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepo) SetRoleAndCompany(_ context.Context, userID, roleName, companyID string) error {
	u, ok := r.db.Users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.RoleName = roleName
	if companyID != "" {
		cid := companyID
		u.CompanyID = &cid
	}
	return nil
}

func (r *UserRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.db.Users {
		if u.CompanyIDValue() == companyID {
			out = append(out, clone(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *UserRepo) ListAll(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.db.Users {
		out = append(out, clone(u))
	}
	return out, nil
}

type PermissionRepo struct{ db *DB }

var _ repository.PermissionRepository = (*PermissionRepo)(nil)

func (r *PermissionRepo) HasPermission(_ context.Context, userID, codename string) (bool, error) {
	if r.db.UserPerms[userID][codename] {
		return true, nil
	}
	if u, ok := r.db.Users[userID]; ok && u.RoleName != "" {
		return r.db.RolePerms[u.RoleName][codename], nil
	}
	return false, nil
}

func (r *PermissionRepo) ListForUser(_ context.Context, userID string) ([]string, error) {
	var out []string
	for code, ok := range r.db.UserPerms[userID] {
		if ok {
			out = append(out, code)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *PermissionRepo) GrantToUser(_ context.Context, userID string, codenames []string) error {
	if r.db.UserPerms[userID] == nil {
		r.db.UserPerms[userID] = map[string]bool{}
	}
	for _, c := range codenames {
		r.db.UserPerms[userID][c] = true
	}
	return nil
}

func (r *PermissionRepo) ReplaceUserPermissions(ctx context.Context, userID string, codenames []string) error {
	r.db.UserPerms[userID] = map[string]bool{}
	return r.GrantToUser(ctx, userID, codenames)
}

func (r *PermissionRepo) EnsureCatalog(_ context.Context, _ []entity.Permission, rolePerms map[string][]string) error {
	for role, codes := range rolePerms {
		set := map[string]bool{}
		for _, c := range codes {
			set[c] = true
		}
		r.db.RolePerms[role] = set
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Products, suppliers, movimientos
// ──────────────────────────────────────────────────────────────────────────────

type ProductRepo struct{ db *DB }

var _ repository.ProductRepository = (*ProductRepo)(nil)

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.db.Products[p.ID] = clone(p)
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return clone(r.db.Products[id]), nil
}

func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	cur, ok := r.db.Products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stock := cur.Stock
	r.db.Products[p.ID] = clone(p)
	r.db.Products[p.ID].Stock = stock
	return nil
}

func (r *ProductRepo) AdjustStock(_ context.Context, id string, delta int) error {
	p, ok := r.db.Products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock += delta
	return nil
}

func (r *ProductRepo) ListByCompany(_ context.Context, companyID string, f repository.ProductFilter) ([]*entity.Product, int, error) {
	var all []*entity.Product
	for _, p := range r.db.Products {
		if p.CompanyID == companyID && strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
			all = append(all, clone(p))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, f.Limit, f.Offset), len(all), nil
}

func (r *ProductRepo) ListAllByCompany(ctx context.Context, companyID string) ([]*entity.Product, error) {
	list, _, err := r.ListByCompany(ctx, companyID, repository.ProductFilter{})
	return list, err
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	delete(r.db.Products, id)
	return nil
}

type SupplierRepo struct{ db *DB }

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

func (r *SupplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	for _, other := range r.db.Suppliers {
		if other.CompanyID == s.CompanyID && strings.EqualFold(other.Name, s.Name) {
			return domain.ErrDuplicate
		}
	}
	r.db.Suppliers[s.ID] = clone(s)
	return nil
}

func (r *SupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	return clone(r.db.Suppliers[id]), nil
}

func (r *SupplierRepo) Update(_ context.Context, s *entity.Supplier) error {
	r.db.Suppliers[s.ID] = clone(s)
	return nil
}

func (r *SupplierRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Supplier, int, error) {
	var all []*entity.Supplier
	for _, s := range r.db.Suppliers {
		if s.CompanyID == companyID {
			all = append(all, clone(s))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, limit, offset), len(all), nil
}

func (r *SupplierRepo) Delete(_ context.Context, id string) error {
	delete(r.db.Suppliers, id)
	return nil
}

type PurchaseRepo struct{ db *DB }

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

func (r *PurchaseRepo) Create(_ context.Context, p *entity.Purchase) error {
	r.db.Purchases[p.ID] = clone(p)
	return nil
}

func (r *PurchaseRepo) GetByID(_ context.Context, id string) (*entity.Purchase, error) {
	p := clone(r.db.Purchases[id])
	if p != nil {
		if prod, ok := r.db.Products[p.ProductID]; ok {
			p.ProductName = prod.Name
		}
	}
	return p, nil
}

// GetForUpdate sin bloqueo propio: TxRunner.Run ya serializa las transacciones.
func (r *PurchaseRepo) GetForUpdate(ctx context.Context, id string) (*entity.Purchase, error) {
	return r.GetByID(ctx, id)
}

func (r *PurchaseRepo) Update(_ context.Context, p *entity.Purchase) error {
	if _, ok := r.db.Purchases[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.db.Purchases[p.ID] = clone(p)
	return nil
}

func (r *PurchaseRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Purchase, int, error) {
	var all []*entity.Purchase
	for _, p := range r.db.Purchases {
		if p.CompanyID == companyID {
			all = append(all, clone(p))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })
	return page(all, limit, offset), len(all), nil
}

func (r *PurchaseRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.db.Purchases[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.db.Purchases, id)
	return nil
}

func (r *PurchaseRepo) Statistics(_ context.Context, companyID string) (decimal.Decimal, decimal.Decimal, error) {
	total, n := decimal.Zero, 0
	for _, p := range r.db.Purchases {
		if p.CompanyID == companyID {
			total = total.Add(p.TotalCost)
			n++
		}
	}
	if n == 0 {
		return decimal.Zero, decimal.Zero, nil
	}
	return total, total.Div(decimal.NewFromInt(int64(n))).Round(2), nil
}

type SaleRepo struct {
	db *DB
	// Series respuesta fija de SeriesByPeriod.
	Series []repository.SalesPeriod
}

var _ repository.SaleRepository = (*SaleRepo)(nil)

func (r *SaleRepo) Create(_ context.Context, s *entity.Sale) error {
	r.db.Sales[s.ID] = clone(s)
	return nil
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	s := clone(r.db.Sales[id])
	if s != nil {
		if prod, ok := r.db.Products[s.ProductID]; ok {
			s.ProductName = prod.Name
		}
	}
	return s, nil
}

func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *SaleRepo) Update(_ context.Context, s *entity.Sale) error {
	if _, ok := r.db.Sales[s.ID]; !ok {
		return domain.ErrNotFound
	}
	r.db.Sales[s.ID] = clone(s)
	return nil
}

func (r *SaleRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Sale, int, error) {
	var all []*entity.Sale
	for _, s := range r.db.Sales {
		if s.CompanyID == companyID {
			all = append(all, clone(s))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })
	return page(all, limit, offset), len(all), nil
}

func (r *SaleRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.db.Sales[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.db.Sales, id)
	return nil
}

func (r *SaleRepo) SeriesByPeriod(_ context.Context, _ repository.SalesSeriesQuery) ([]repository.SalesPeriod, error) {
	return r.Series, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Planes, suscripciones y pagos
// ──────────────────────────────────────────────────────────────────────────────

type PlanRepo struct{ db *DB }

var _ repository.PlanRepository = (*PlanRepo)(nil)

func (r *PlanRepo) List(_ context.Context) ([]*entity.Plan, error) {
	out := make([]*entity.Plan, 0, len(r.db.Plans))
	for _, p := range r.db.Plans {
		out = append(out, clone(p))
	}
	// mismo orden que el SQL: created_at, name
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *PlanRepo) GetByID(_ context.Context, id string) (*entity.Plan, error) {
	return clone(r.db.Plans[id]), nil
}

type SubscriptionRepo struct{ db *DB }

var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

func (r *SubscriptionRepo) Create(_ context.Context, s *entity.Subscription) error {
	r.db.Subs[s.ID] = clone(s)
	return nil
}

func (r *SubscriptionRepo) GetByID(_ context.Context, id string) (*entity.Subscription, error) {
	return clone(r.db.Subs[id]), nil
}

func (r *SubscriptionRepo) ListByUser(_ context.Context, userID string) ([]*entity.Subscription, error) {
	var out []*entity.Subscription
	for _, s := range r.db.Subs {
		if s.UserID == userID {
			out = append(out, clone(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *SubscriptionRepo) GetCurrent(_ context.Context, userID string, now time.Time) (*entity.Subscription, error) {
	for _, s := range r.db.Subs {
		if s.UserID == userID && s.IsCurrent(now) {
			return clone(s), nil
		}
	}
	return nil, nil
}

func (r *SubscriptionRepo) Activate(_ context.Context, id string) error {
	s, ok := r.db.Subs[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.IsActive = true
	return nil
}

type PaymentRepo struct{ db *DB }

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

func (r *PaymentRepo) Create(_ context.Context, p *entity.PaymentTransaction) error {
	for _, other := range r.db.Payments {
		if other.TransactionID == p.TransactionID || other.Reference == p.Reference {
			return domain.ErrDuplicate
		}
	}
	r.db.Payments[p.ID] = clone(p)
	return nil
}

func (r *PaymentRepo) GetByID(_ context.Context, id string) (*entity.PaymentTransaction, error) {
	return clone(r.db.Payments[id]), nil
}

func (r *PaymentRepo) ListByUser(_ context.Context, userID string) ([]*entity.PaymentTransaction, error) {
	var out []*entity.PaymentTransaction
	for _, p := range r.db.Payments {
		if s, ok := r.db.Subs[p.SubscriptionID]; ok && s.UserID == userID {
			out = append(out, clone(p))
		}
	}
	return out, nil
}

func (r *PaymentRepo) OwnerOf(_ context.Context, id string) (string, error) {
	p, ok := r.db.Payments[id]
	if !ok {
		return "", nil
	}
	if s, ok := r.db.Subs[p.SubscriptionID]; ok {
		return s.UserID, nil
	}
	return "", nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Transacciones
// ──────────────────────────────────────────────────────────────────────────────

// TxRunner ejecuta fn con los repositorios en memoria. Si fn falla restaura el stock de los productos.
type TxRunner struct{ db *DB }

func (t *TxRunner) snapshot() func() {
	stock := make(map[string]int, len(t.db.Products))
	for id, p := range t.db.Products {
		stock[id] = p.Stock
	}
	return func() {
		for id, s := range stock {
			if p, ok := t.db.Products[id]; ok {
				p.Stock = s
			}
		}
	}
}

func (t *TxRunner) Run(ctx context.Context, fn func(repository.ProductRepository, repository.SaleRepository, repository.PurchaseRepository) error) error {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	restore := t.snapshot()
	if err := fn(&ProductRepo{t.db}, &SaleRepo{db: t.db}, &PurchaseRepo{t.db}); err != nil {
		restore()
		return err
	}
	return nil
}

func (t *TxRunner) RunCompany(ctx context.Context, fn func(repository.CompanyRepository, repository.UserRepository, repository.PermissionRepository) error) error {
	return fn(&CompanyRepo{t.db}, &UserRepo{t.db}, &PermissionRepo{t.db})
}

func (t *TxRunner) RunPayment(ctx context.Context, fn func(repository.PaymentRepository, repository.SubscriptionRepository) error) error {
	return fn(&PaymentRepo{t.db}, &SubscriptionRepo{t.db})
}

// Repos agrupa un repositorio de cada tipo sobre la misma DB.
type Repos struct {
	DB            *DB
	Companies     *CompanyRepo
	Users         *UserRepo
	Permissions   *PermissionRepo
	Products      *ProductRepo
	Suppliers     *SupplierRepo
	Purchases     *PurchaseRepo
	Sales         *SaleRepo
	Plans         *PlanRepo
	Subscriptions *SubscriptionRepo
	Payments      *PaymentRepo
	Tx            *TxRunner
}

// New base vacía con todos sus repositorios.
func New() *Repos {
	db := NewDB()
	return &Repos{
		DB:            db,
		Companies:     &CompanyRepo{db},
		Users:         &UserRepo{db},
		Permissions:   &PermissionRepo{db},
		Products:      &ProductRepo{db},
		Suppliers:     &SupplierRepo{db},
		Purchases:     &PurchaseRepo{db},
		Sales:         &SaleRepo{db: db},
		Plans:         &PlanRepo{db},
		Subscriptions: &SubscriptionRepo{db},
		Payments:      &PaymentRepo{db},
		Tx:            &TxRunner{db},
	}
}
