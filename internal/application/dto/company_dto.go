package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreateCompanyRequest entrada para crear una empresa.
type CreateCompanyRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
}

func (r CreateCompanyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error("el nombre es obligatorio"), validation.Length(1, 255)),
		validation.Field(&r.Address, validation.Length(0, 255)),
		validation.Field(&r.Phone, validation.Length(0, 20)),
		validation.Field(&r.Email, is.Email),
	)
}

// UpdateCompanyRequest entrada para actualizar una empresa (campos opcionales).
type UpdateCompanyRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
}

func (r UpdateCompanyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty.Error("el nombre no puede estar vacío"), validation.Length(1, 255)),
		validation.Field(&r.Phone, validation.Length(0, 20)),
		validation.Field(&r.Email, is.Email),
	)
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	LogoURL     string    `json:"logo_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CompanyCreatedResponse compañía creada y tokens nuevos con el rol entrepreneur.
type CompanyCreatedResponse struct {
	CompanyResponse
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// CreateEmployeeRequest alta de un empleado dentro de la compañía.
type CreateEmployeeRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	PhoneNumber    string `json:"phone_number"`
	DocumentNumber string `json:"document_number"`
}

func (r CreateEmployeeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required.Error("el email es obligatorio"), is.Email),
		validation.Field(&r.Password,
			validation.Required.Error("la contraseña es obligatoria"),
			validation.Length(8, 128),
		),
		validation.Field(&r.DocumentNumber, validation.Length(0, 20)),
	)
}

// UpdateEmployeePermissionsRequest reemplaza los permisos directos de un empleado.
type UpdateEmployeePermissionsRequest struct {
	Email       string   `json:"email"`
	Permissions []string `json:"permissions"`
}

func (r UpdateEmployeePermissionsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required.Error("el email es obligatorio"), is.Email),
		validation.Field(&r.Permissions, validation.NotNil.Error("la lista de permisos es obligatoria")),
	)
}

// EmployeeResponse empleado con sus permisos efectivos.
type EmployeeResponse struct {
	UserResponse
	Permissions []string `json:"permissions"`
}
