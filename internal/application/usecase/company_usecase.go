package usecase

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ventas-api/internal/application/auth"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/ports"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// CompanyTxRunner ejecuta fn con repos de compañía, usuario y permisos atados a una transacción.
type CompanyTxRunner interface {
	RunCompany(ctx context.Context, fn func(
		companyRepo repository.CompanyRepository,
		userRepo repository.UserRepository,
		permRepo repository.PermissionRepository,
	) error) error
}

// CompanyUseCase aplica reglas de negocio para empresas y sus empleados.
type CompanyUseCase struct {
	repo     repository.CompanyRepository
	userRepo repository.UserRepository
	permRepo repository.PermissionRepository
	subRepo  repository.SubscriptionRepository
	tx       CompanyTxRunner
	storage  ports.ObjectStorage // nil si MinIO no está configurado
	now      func() time.Time
}

// NewCompanyUseCase construye el caso de uso. storage puede ser nil.
func NewCompanyUseCase(
	repo repository.CompanyRepository,
	userRepo repository.UserRepository,
	permRepo repository.PermissionRepository,
	subRepo repository.SubscriptionRepository,
	tx CompanyTxRunner,
	storage ports.ObjectStorage,
) *CompanyUseCase {
	return &CompanyUseCase{
		repo:     repo,
		userRepo: userRepo,
		permRepo: permRepo,
		subRepo:  subRepo,
		tx:       tx,
		storage:  storage,
		now:      time.Now,
	}
}

// List compañías propias o donde trabaja el usuario.
func (uc *CompanyUseCase) List(ctx context.Context, userID string) ([]dto.CompanyResponse, error) {
	list, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *dto.FromCompany(c))
	}
	return items, nil
}

// Get solo el dueño puede ver el detalle.
func (uc *CompanyUseCase) Get(ctx context.Context, userID, id string) (*dto.CompanyResponse, error) {
	company, err := uc.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return dto.FromCompany(company), nil
}

// Create exige suscripción vigente y que el usuario no tenga compañía (propia ni como
// empleado): users.company_id apunta a una sola. El creador queda como entrepreneur,
// asignado a la compañía y con los permisos de dueño.
func (uc *CompanyUseCase) Create(ctx context.Context, userID string, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	sub, err := uc.subRepo.GetCurrent(ctx, userID, uc.now())
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, domain.ErrSubscriptionRequired
	}
	current, err := uc.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if current != nil {
		return nil, domain.ErrCompanyLimit
	}

	now := uc.now()
	company := &entity.Company{
		ID:          uuid.New().String(),
		OwnerID:     userID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Address:     in.Address,
		Phone:       in.Phone,
		Email:       in.Email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = uc.tx.RunCompany(ctx, func(
		companyRepo repository.CompanyRepository,
		userRepo repository.UserRepository,
		permRepo repository.PermissionRepository,
	) error {
		if err := companyRepo.Create(ctx, company); err != nil {
			return err
		}
		if err := userRepo.SetRoleAndCompany(ctx, userID, entity.RoleEntrepreneur, company.ID); err != nil {
			return err
		}
		return permRepo.GrantToUser(ctx, userID, entity.OwnerPermissions)
	})
	if err != nil {
		return nil, err
	}
	return dto.FromCompany(company), nil
}

// Update solo el dueño.
func (uc *CompanyUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		company.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		company.Description = *in.Description
	}
	if in.Address != nil {
		company.Address = *in.Address
	}
	if in.Phone != nil {
		company.Phone = *in.Phone
	}
	if in.Email != nil {
		company.Email = *in.Email
	}
	company.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return dto.FromCompany(company), nil
}

// Delete solo el dueño.
func (uc *CompanyUseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := uc.owned(ctx, userID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// AddEmployee crea un usuario con rol employee dentro de la compañía y permiso view_products.
func (uc *CompanyUseCase) AddEmployee(ctx context.Context, userID, companyID string, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if _, err := uc.owned(ctx, userID, companyID); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	phone := ""
	if in.PhoneNumber != "" {
		if phone, err = auth.CleanPhone(in.PhoneNumber); err != nil {
			return nil, err
		}
	}
	employee, err := auth.NewUser(email, in.Password, in.FirstName, in.LastName, phone, in.DocumentNumber)
	if err != nil {
		return nil, err
	}
	employee.CompanyID = &companyID
	employee.RoleName = entity.RoleEmployee

	grants := []string{entity.PermViewProducts}
	err = uc.tx.RunCompany(ctx, func(
		_ repository.CompanyRepository,
		userRepo repository.UserRepository,
		permRepo repository.PermissionRepository,
	) error {
		if err := userRepo.Create(ctx, employee); err != nil {
			return err
		}
		if err := userRepo.SetRoleAndCompany(ctx, employee.ID, entity.RoleEmployee, companyID); err != nil {
			return err
		}
		return permRepo.GrantToUser(ctx, employee.ID, grants)
	})
	if err != nil {
		return nil, err
	}
	perms, err := uc.permRepo.ListForUser(ctx, employee.ID)
	if err != nil {
		return nil, err
	}
	return &dto.EmployeeResponse{UserResponse: *dto.FromUser(employee), Permissions: nonNil(perms)}, nil
}

// ListEmployees usuarios asignados a la compañía, sin incluir al dueño.
func (uc *CompanyUseCase) ListEmployees(ctx context.Context, userID, companyID string) ([]dto.EmployeeResponse, error) {
	company, err := uc.owned(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}
	users, err := uc.userRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(users))
	for _, u := range users {
		if u.ID == company.OwnerID {
			continue
		}
		perms, err := uc.permRepo.ListForUser(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.EmployeeResponse{UserResponse: *dto.FromUser(u), Permissions: nonNil(perms)})
	}
	return out, nil
}

// UpdateEmployeePermissions reemplaza los permisos directos del empleado por los indicados.
func (uc *CompanyUseCase) UpdateEmployeePermissions(ctx context.Context, userID, companyID string, in dto.UpdateEmployeePermissionsRequest) (*dto.EmployeeResponse, error) {
	if _, err := uc.owned(ctx, userID, companyID); err != nil {
		return nil, err
	}
	for _, code := range in.Permissions {
		if !entity.IsKnownPermission(code) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownPermission, code)
		}
	}
	employee, err := uc.userRepo.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if employee == nil || employee.CompanyIDValue() != companyID {
		return nil, domain.ErrNotEmployee
	}
	err = uc.tx.RunCompany(ctx, func(
		_ repository.CompanyRepository,
		_ repository.UserRepository,
		permRepo repository.PermissionRepository,
	) error {
		return permRepo.ReplaceUserPermissions(ctx, employee.ID, in.Permissions)
	})
	if err != nil {
		return nil, err
	}
	perms, err := uc.permRepo.ListForUser(ctx, employee.ID)
	if err != nil {
		return nil, err
	}
	return &dto.EmployeeResponse{UserResponse: *dto.FromUser(employee), Permissions: nonNil(perms)}, nil
}

// UploadLogo sube el logo al almacenamiento de objetos y guarda su URL.
func (uc *CompanyUseCase) UploadLogo(ctx context.Context, userID, companyID, filename, contentType string, size int64, r io.Reader) (*dto.CompanyResponse, error) {
	if uc.storage == nil {
		return nil, domain.ErrUnavailable
	}
	company, err := uc.owned(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: el logo debe ser una imagen", domain.ErrInvalidInput)
	}
	key := fmt.Sprintf("companies/%s/logo-%d%s", company.ID, uc.now().Unix(), strings.ToLower(path.Ext(filename)))
	url, err := uc.storage.Upload(ctx, key, r, size, contentType)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateLogo(ctx, company.ID, url); err != nil {
		return nil, err
	}
	company.LogoURL = url
	return dto.FromCompany(company), nil
}

// owned ErrNotFound si no existe, ErrForbidden si userID no es el dueño.
func (uc *CompanyUseCase) owned(ctx context.Context, userID, id string) (*entity.Company, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if !company.IsOwnedBy(userID) {
		return nil, domain.ErrForbidden
	}
	return company, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
