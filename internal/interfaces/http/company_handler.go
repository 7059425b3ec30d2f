package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-api/internal/application/auth"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/usecase"
)

// maxLogoSize tamaño máximo del logo (2 MB).
const maxLogoSize = 2 << 20

// CompanyHandler maneja las peticiones HTTP para el recurso Company.
type CompanyHandler struct {
	uc     *usecase.CompanyUseCase
	authUC *auth.AuthUseCase
}

// NewCompanyHandler construye el handler. authUC emite los tokens nuevos tras crear la compañía.
func NewCompanyHandler(uc *usecase.CompanyUseCase, authUC *auth.AuthUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc, authUC: authUC}
}

// List godoc
// @Summary      Listar compañías del usuario (propias o donde trabaja)
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CompanyResponse
// @Router       /api/companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener compañía por ID (solo el dueño)
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la compañía"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [get]
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Get(c.Context(), GetUserID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear compañía
// @Description  Requiere suscripción activa. El creador pasa a ser entrepreneur; la respuesta trae tokens nuevos con ese rol.
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompanyRequest  true  "Datos de la compañía"
// @Success      201   {object}  dto.CompanyCreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	userID := GetUserID(c)
	company, err := h.uc.Create(c.Context(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	pair, err := h.authUC.IssueForUser(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CompanyCreatedResponse{
		CompanyResponse: *company,
		Access:          pair.Access,
		Refresh:         pair.Refresh,
	})
}

// Update godoc
// @Summary      Actualizar compañía (solo el dueño)
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la compañía"
// @Param        body  body  dto.UpdateCompanyRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [put]
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCompanyRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.Context(), GetUserID(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar compañía (solo el dueño)
// @Tags         companies
// @Security     Bearer
// @Param        id   path  string  true  "ID de la compañía"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [delete]
func (h *CompanyHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.Context(), GetUserID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddEmployee godoc
// @Summary      Agregar empleado
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la compañía"
// @Param        body  body  dto.CreateEmployeeRequest  true  "Datos del empleado"
// @Success      201   {object}  dto.EmployeeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/employees [post]
func (h *CompanyHandler) AddEmployee(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.AddEmployee(c.Context(), GetUserID(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListEmployees godoc
// @Summary      Listar empleados (solo el dueño)
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la compañía"
// @Success      200  {array}  dto.EmployeeResponse
// @Router       /api/companies/{id}/employees [get]
func (h *CompanyHandler) ListEmployees(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListEmployees(c.Context(), GetUserID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateEmployeePermissions godoc
// @Summary      Reemplazar permisos directos de un empleado
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la compañía"
// @Param        body  body  dto.UpdateEmployeePermissionsRequest  true  "email y permisos"
// @Success      200   {object}  dto.EmployeeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/employees/permissions [put]
func (h *CompanyHandler) UpdateEmployeePermissions(c *fiber.Ctx) error {
	var in dto.UpdateEmployeePermissionsRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateEmployeePermissions(c.Context(), GetUserID(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UploadLogo godoc
// @Summary      Subir logo de la compañía
// @Tags         companies
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "ID de la compañía"
// @Param        logo  formData  file    true  "Imagen del logo"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/logo [post]
func (h *CompanyHandler) UploadLogo(c *fiber.Ctx) error {
	fh, err := c.FormFile("logo")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "el archivo 'logo' es requerido")
	}
	if fh.Size > maxLogoSize {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "el logo no puede superar 2 MB")
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer f.Close()

	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UploadLogo(c.Context(), GetUserID(c), id,
		fh.Filename, fh.Header.Get("Content-Type"), fh.Size, f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
