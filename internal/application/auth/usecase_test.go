package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/apptest"
	"github.com/jhoicas/ventas-api/internal/application/auth"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/pkg/jwt"
)

const secret = "clave-de-prueba"

func newAuth(r *apptest.Repos) *auth.AuthUseCase {
	tokens := jwt.Issuer{Secret: secret, Issuer: "test", AccessTTL: 30 * time.Minute, RefreshTTL: 24 * time.Hour}
	return auth.NewAuthUseCase(r.Users, r.Companies, r.Permissions, tokens, secret)
}

func register(t *testing.T, uc *auth.AuthUseCase, email, doc string) *dto.UserResponse {
	t.Helper()
	u, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: email, Password: "secreta123", FirstName: "Ana", LastName: "Pérez",
		PhoneNumber: "+57 300-123-4567", DocumentNumber: doc,
	})
	require.NoError(t, err)
	return u
}

func TestCleanPhone(t *testing.T) {
	got, err := auth.CleanPhone("+57 (300) 123-4567")
	require.NoError(t, err)
	assert.Equal(t, "573001234567", got)

	_, err = auth.CleanPhone("sin-numeros")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_SinRolNiCompania(t *testing.T) {
	r := apptest.New()
	u := register(t, newAuth(r), "  Ana@Test.com ", "123")

	assert.Equal(t, "ana@test.com", u.Email)
	assert.Equal(t, "573001234567", u.PhoneNumber)
	assert.Empty(t, u.Role)
	assert.Empty(t, u.CompanyID)
	assert.NotEqual(t, "secreta123", r.DB.Users[u.ID].PasswordHash)
}

func TestRegister_EmailODocumentoDuplicado(t *testing.T) {
	r := apptest.New()
	uc := newAuth(r)
	register(t, uc, "ana@test.com", "123")

	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "ANA@test.com", Password: "secreta123", PhoneNumber: "300", DocumentNumber: "999",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "otra@test.com", Password: "secreta123", PhoneNumber: "300", DocumentNumber: "123",
	})
	assert.ErrorIs(t, err, domain.ErrDocumentExists)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login y refresh
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesYTokens(t *testing.T) {
	r := apptest.New()
	uc := newAuth(r)
	register(t, uc, "ana@test.com", "123")

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@test.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@test.com", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	got, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@test.com", Password: "secreta123"})
	require.NoError(t, err)
	id, err := jwt.ParseType(secret, got.Access, jwt.TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, got.User.ID, id.UserID)
	assert.Empty(t, id.Role)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	r := apptest.New()
	uc := newAuth(r)
	u := register(t, uc, "ana@test.com", "123")
	r.DB.Users[u.ID].IsActive = false

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@test.com", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRefresh_RefrescaRolYCompania(t *testing.T) {
	r := apptest.New()
	uc := newAuth(r)
	u := register(t, uc, "ana@test.com", "123")
	login, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@test.com", Password: "secreta123"})
	require.NoError(t, err)

	// el usuario crea su compañía después del login
	c := r.AddCompany(r.DB.Users[u.ID], "Tienda")

	got, err := uc.Refresh(context.Background(), dto.RefreshRequest{Refresh: login.Refresh})
	require.NoError(t, err)
	id, err := jwt.ParseType(secret, got.Access, jwt.TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleEntrepreneur, id.Role)
	assert.Equal(t, c.ID, id.CompanyID)
}

func TestRefresh_AccessTokenNoSirve(t *testing.T) {
	r := apptest.New()
	uc := newAuth(r)
	register(t, uc, "ana@test.com", "123")
	login, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@test.com", Password: "secreta123"})
	require.NoError(t, err)

	_, err = uc.Refresh(context.Background(), dto.RefreshRequest{Refresh: login.Access})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestMe_IncluyeCompaniaYPermisos(t *testing.T) {
	r := apptest.New()
	uc := newAuth(r)
	owner := r.AddUser("dueno@test.com")
	c := r.AddCompany(owner, "Tienda")
	require.NoError(t, r.Permissions.GrantToUser(context.Background(), owner.ID, entity.OwnerPermissions))

	got, err := uc.Me(context.Background(), owner.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Company)
	assert.Equal(t, c.ID, got.Company.ID)
	assert.ElementsMatch(t, entity.OwnerPermissions, got.Permissions)

	loose := r.AddUser("suelto@test.com")
	got, err = uc.Me(context.Background(), loose.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Company)
	assert.NotNil(t, got.Permissions)
}
