package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// RegisterRequest entrada para registro. El teléfono se limpia a solo dígitos en el use case.
type RegisterRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	PhoneNumber    string `json:"phone_number"`
	DocumentNumber string `json:"document_number"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("el email es obligatorio"),
			is.Email.Error("email inválido"),
			validation.Length(5, 255),
		),
		validation.Field(&r.Password,
			validation.Required.Error("la contraseña es obligatoria"),
			validation.Length(8, 128).Error("la contraseña debe tener entre 8 y 128 caracteres"),
		),
		validation.Field(&r.FirstName, validation.Required.Error("el nombre es obligatorio"), validation.Length(1, 150)),
		validation.Field(&r.LastName, validation.Required.Error("el apellido es obligatorio"), validation.Length(1, 150)),
		validation.Field(&r.PhoneNumber, validation.Required.Error("el teléfono es obligatorio"), validation.Length(1, 30)),
		validation.Field(&r.DocumentNumber, validation.Required.Error("el documento es obligatorio"), validation.Length(1, 20)),
	)
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// RefreshRequest entrada para renovar el access token.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

func (r RefreshRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Refresh, validation.Required.Error("el refresh token es obligatorio")),
	)
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	PhoneNumber    string    `json:"phone_number"`
	DocumentNumber string    `json:"document_number"`
	Role           string    `json:"role,omitempty"`
	CompanyID      string    `json:"company_id,omitempty"`
	IsActive       bool      `json:"is_active"`
	DateJoined     time.Time `json:"date_joined"`
}

// MeResponse usuario actual con su compañía y permisos efectivos.
type MeResponse struct {
	UserResponse
	Company     *CompanyResponse `json:"company,omitempty"`
	Permissions []string         `json:"permissions"`
}

// LoginResponse par de tokens y usuario.
type LoginResponse struct {
	Access  string       `json:"access"`
	Refresh string       `json:"refresh"`
	User    UserResponse `json:"user"`
}

// RefreshResponse nuevo access token.
type RefreshResponse struct {
	Access string `json:"access"`
}
