package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"
)

// PurchaseRequest entrada para crear o reemplazar una compra. Date vacío = ahora.
type PurchaseRequest struct {
	ProductID string          `json:"product"`
	Supplier  string          `json:"supplier"`
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Date      *time.Time      `json:"date,omitempty"`
}

func (r PurchaseRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, validation.Required.Error("el producto es obligatorio"), is.UUID),
		validation.Field(&r.Supplier, validation.Length(0, 255)),
		validation.Field(&r.Quantity,
			validation.Required.Error("la cantidad debe ser mayor que cero"),
			validation.Min(1).Error("la cantidad debe ser mayor que cero"),
		),
		validation.Field(&r.UnitCost, positiveDecimal),
	)
}

// PurchaseResponse salida de una compra.
type PurchaseResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	ProductID   string          `json:"product"`
	ProductName string          `json:"product_name"`
	Supplier    string          `json:"supplier"`
	Quantity    int             `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PurchaseListResponse lista paginada de compras.
type PurchaseListResponse struct {
	Items []PurchaseResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// PurchaseStatisticsResponse totales de compras de la compañía.
type PurchaseStatisticsResponse struct {
	TotalPurchases  decimal.Decimal `json:"total_purchases"`
	AveragePurchase decimal.Decimal `json:"average_purchase"`
}

// SaleRequest entrada para crear o reemplazar una venta. Date vacío = ahora.
type SaleRequest struct {
	ProductID string          `json:"product"`
	Customer  string          `json:"customer"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Date      *time.Time      `json:"date,omitempty"`
}

func (r SaleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, validation.Required.Error("el producto es obligatorio"), is.UUID),
		validation.Field(&r.Customer, validation.Length(0, 255)),
		validation.Field(&r.Quantity,
			validation.Required.Error("la cantidad debe ser mayor que cero"),
			validation.Min(1).Error("la cantidad debe ser mayor que cero"),
		),
		validation.Field(&r.UnitPrice, positiveDecimal),
	)
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	ProductID   string          `json:"product"`
	ProductName string          `json:"product_name"`
	Customer    string          `json:"customer"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	Date        time.Time       `json:"date"`
	SoldBy      string          `json:"sold_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
