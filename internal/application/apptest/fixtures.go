package apptest

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// AddUser usuario sin rol ni compañía.
func (r *Repos) AddUser(email string) *entity.User {
	u := &entity.User{ID: uuid.New().String(), Email: email, IsActive: true, DateJoined: time.Now()}
	r.DB.Users[u.ID] = u
	return u
}

// AddCompany compañía con dueño; el dueño queda como entrepreneur asignado a ella.
func (r *Repos) AddCompany(owner *entity.User, name string) *entity.Company {
	c := &entity.Company{ID: uuid.New().String(), OwnerID: owner.ID, Name: name, CreatedAt: time.Now()}
	r.DB.Companies[c.ID] = c
	owner.RoleName = entity.RoleEntrepreneur
	owner.CompanyID = &c.ID
	return c
}

// AddEmployee usuario employee asignado a la compañía.
func (r *Repos) AddEmployee(c *entity.Company, email string) *entity.User {
	u := r.AddUser(email)
	u.RoleName = entity.RoleEmployee
	u.CompanyID = &c.ID
	return u
}

// AddProduct producto con precio y stock.
func (r *Repos) AddProduct(c *entity.Company, name string, price string, stock int) *entity.Product {
	p := &entity.Product{
		ID:        uuid.New().String(),
		CompanyID: c.ID,
		Name:      name,
		Price:     decimal.RequireFromString(price),
		Stock:     stock,
		CreatedAt: time.Now(),
	}
	r.DB.Products[p.ID] = p
	return p
}

// AddPlan plan activo.
func (r *Repos) AddPlan(name, price string, maxCompanies int) *entity.Plan {
	p := &entity.Plan{
		ID:           uuid.New().String(),
		Name:         name,
		Price:        decimal.RequireFromString(price),
		DurationDays: 30,
		MaxCompanies: maxCompanies,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	r.DB.Plans[p.ID] = p
	return p
}

// AddSubscription suscripción del usuario al plan, vigente 30 días desde now.
func (r *Repos) AddSubscription(u *entity.User, p *entity.Plan, active bool, now time.Time) *entity.Subscription {
	s := &entity.Subscription{
		ID:        uuid.New().String(),
		UserID:    u.ID,
		PlanID:    p.ID,
		PlanName:  p.Name,
		StartDate: now,
		EndDate:   now.Add(p.Duration()),
		IsActive:  active,
		CreatedAt: now,
	}
	r.DB.Subs[s.ID] = s
	return s
}
