package dto

import "github.com/jhoicas/ventas-api/internal/domain/entity"

// FromUser convierte la entidad a DTO (sin password).
func FromUser(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		PhoneNumber:    u.PhoneNumber,
		DocumentNumber: u.DocumentNumber,
		Role:           u.RoleName,
		CompanyID:      u.CompanyIDValue(),
		IsActive:       u.IsActive,
		DateJoined:     u.DateJoined,
	}
}

func FromCompany(c *entity.Company) *CompanyResponse {
	if c == nil {
		return nil
	}
	return &CompanyResponse{
		ID:          c.ID,
		OwnerID:     c.OwnerID,
		Name:        c.Name,
		Description: c.Description,
		Address:     c.Address,
		Phone:       c.Phone,
		Email:       c.Email,
		LogoURL:     c.LogoURL,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func FromProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func FromSupplier(s *entity.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:        s.ID,
		CompanyID: s.CompanyID,
		Name:      s.Name,
		Email:     s.Email,
		Phone:     s.Phone,
		Address:   s.Address,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func FromPurchase(p *entity.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		ProductID:   p.ProductID,
		ProductName: p.ProductName,
		Supplier:    p.Supplier,
		Quantity:    p.Quantity,
		UnitCost:    p.UnitCost,
		TotalCost:   p.TotalCost,
		Date:        p.Date,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func FromSale(s *entity.Sale) SaleResponse {
	out := SaleResponse{
		ID:          s.ID,
		CompanyID:   s.CompanyID,
		ProductID:   s.ProductID,
		ProductName: s.ProductName,
		Customer:    s.Customer,
		Quantity:    s.Quantity,
		UnitPrice:   s.UnitPrice,
		TotalPrice:  s.TotalPrice,
		Date:        s.Date,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if s.SoldBy != nil {
		out.SoldBy = *s.SoldBy
	}
	return out
}

func FromPlan(p *entity.Plan) PlanResponse {
	return PlanResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		DurationDays: p.DurationDays,
		MaxCompanies: p.MaxCompanies,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
	}
}

func FromSubscription(s *entity.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:        s.ID,
		UserID:    s.UserID,
		PlanID:    s.PlanID,
		PlanName:  s.PlanName,
		StartDate: s.StartDate,
		EndDate:   s.EndDate,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
	}
}

func FromPayment(t *entity.PaymentTransaction) PaymentResponse {
	return PaymentResponse{
		ID:                t.ID,
		SubscriptionID:    t.SubscriptionID,
		TransactionID:     t.TransactionID,
		Reference:         t.Reference,
		Amount:            t.Amount,
		AmountInCents:     t.AmountInCents,
		Currency:          t.Currency,
		Status:            t.Status,
		PaymentMethodType: t.PaymentMethodType,
		PaymentMethodData: t.PaymentMethodData,
		GatewayResponse:   t.GatewayResponse,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}
