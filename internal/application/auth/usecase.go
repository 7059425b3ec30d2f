package auth

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/pkg/jwt"
)

// TokenIssuer firma pares access/refresh (implementado por jwt.Issuer).
type TokenIssuer interface {
	IssuePair(id jwt.Identity) (jwt.Pair, error)
	IssueAccess(id jwt.Identity) (string, error)
}

// AuthUseCase casos de uso de autenticación: registro, login, refresh y perfil.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	permRepo    repository.PermissionRepository
	tokens      TokenIssuer
	secret      string
}

// NewAuthUseCase construye el caso de uso de auth. secret valida los refresh tokens.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	permRepo repository.PermissionRepository,
	tokens TokenIssuer,
	secret string,
) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, companyRepo: companyRepo, permRepo: permRepo, tokens: tokens, secret: secret}
}

// CleanPhone deja solo los dígitos del teléfono. Error si no queda ninguno.
func CleanPhone(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("%w: el número de teléfono debe contener dígitos", domain.ErrInvalidInput)
	}
	return b.String(), nil
}

// RegisterUser crea un usuario sin rol ni compañía: hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists o ErrDocumentExists si ya existen.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	phone, err := CleanPhone(in.PhoneNumber)
	if err != nil {
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
	existing, err = uc.userRepo.GetByDocument(ctx, in.DocumentNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDocumentExists
	}

	user, err := NewUser(email, in.Password, in.FirstName, in.LastName, phone, in.DocumentNumber)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return dto.FromUser(user), nil
}

// NewUser arma un usuario activo con la contraseña hasheada (registro y alta de empleados).
func NewUser(email, password, firstName, lastName, phone, document string) (*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &entity.User{
		ID:             uuid.New().String(),
		Email:          email,
		PasswordHash:   string(hash),
		FirstName:      firstName,
		LastName:       lastName,
		PhoneNumber:    phone,
		DocumentNumber: document,
		IsActive:       true,
		DateJoined:     now,
		UpdatedAt:      now,
	}, nil
}

// Login verifica email/password y emite el par access/refresh.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}
	pair, err := uc.IssueFor(ctx, user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Access:  pair.Access,
		Refresh: pair.Refresh,
		User:    *dto.FromUser(user),
	}, nil
}

// Refresh valida el refresh token y emite un access token con el rol y la compañía actuales.
func (uc *AuthUseCase) Refresh(ctx context.Context, in dto.RefreshRequest) (*dto.RefreshResponse, error) {
	id, err := jwt.ParseType(uc.secret, in.Refresh, jwt.TypeRefresh)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrUnauthorized
	}
	identity, err := uc.identity(ctx, user)
	if err != nil {
		return nil, err
	}
	access, err := uc.tokens.IssueAccess(identity)
	if err != nil {
		return nil, err
	}
	return &dto.RefreshResponse{Access: access}, nil
}

// IssueFor emite un par nuevo con el estado actual del usuario (p. ej. tras crear su compañía).
func (uc *AuthUseCase) IssueFor(ctx context.Context, user *entity.User) (jwt.Pair, error) {
	identity, err := uc.identity(ctx, user)
	if err != nil {
		return jwt.Pair{}, err
	}
	return uc.tokens.IssuePair(identity)
}

// IssueForUser como IssueFor pero a partir del ID del usuario.
func (uc *AuthUseCase) IssueForUser(ctx context.Context, userID string) (jwt.Pair, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return jwt.Pair{}, err
	}
	if user == nil {
		return jwt.Pair{}, domain.ErrUserNotFound
	}
	return uc.IssueFor(ctx, user)
}

// Me perfil del usuario autenticado con su compañía y permisos efectivos.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.MeResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	company, err := uc.companyRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	perms, err := uc.permRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if perms == nil {
		perms = []string{}
	}
	out := &dto.MeResponse{UserResponse: *dto.FromUser(user), Permissions: perms}
	if company != nil {
		out.Company = dto.FromCompany(company)
		out.CompanyID = company.ID
	}
	return out, nil
}

func (uc *AuthUseCase) identity(ctx context.Context, user *entity.User) (jwt.Identity, error) {
	id := jwt.Identity{UserID: user.ID, Role: user.RoleName, CompanyID: user.CompanyIDValue()}
	company, err := uc.companyRepo.GetByUser(ctx, user.ID)
	if err != nil {
		return jwt.Identity{}, err
	}
	if company != nil {
		id.CompanyID = company.ID
	}
	return id, nil
}
