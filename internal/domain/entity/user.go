package entity

import "time"

// User representa un usuario del sistema. Puede ser dueño de una Company
// (entrepreneur) o empleado de una (employee); RoleID y CompanyID son opcionales.
type User struct {
	ID             string
	Email          string
	PasswordHash   string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName      string
	LastName       string
	PhoneNumber    string // solo dígitos
	DocumentNumber string
	RoleID         *string
	RoleName       string // desnormalizado al leer (JOIN roles); vacío si no tiene rol
	CompanyID      *string
	IsActive       bool
	DateJoined     time.Time
	UpdatedAt      time.Time
}

// FullName nombre para mostrar.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "" && u.LastName == "":
		return u.Email
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// CompanyIDValue devuelve el company_id o "" si no tiene.
func (u *User) CompanyIDValue() string {
	if u.CompanyID == nil {
		return ""
	}
	return *u.CompanyID
}
