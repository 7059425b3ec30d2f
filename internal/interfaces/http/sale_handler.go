package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/inventory"
	"github.com/jhoicas/ventas-api/internal/application/prediction"
)

// SaleHandler ventas y predicción de ventas.
type SaleHandler struct {
	uc         *inventory.SaleUseCase
	prediction *prediction.UseCase
	pageSize   int
}

func NewSaleHandler(uc *inventory.SaleUseCase, predictionUC *prediction.UseCase, pageSize int) *SaleHandler {
	return &SaleHandler{uc: uc, prediction: predictionUC, pageSize: pageSize}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Descuenta stock del producto. El vendedor es el usuario autenticado.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SaleRequest  true  "Datos de la venta"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.SaleRequest
	if err := bind(c, &in); err != nil {
		return respondSaleError(c, err)
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondSaleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta por ID
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(c.Context(), GetUserID(c), id)
	if err != nil {
		return respondSaleError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ventas (más recientes primero)
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        limit   query     int  false  "Límite"
// @Param        offset  query     int  false  "Desplazamiento"
// @Success      200     {object}  dto.SaleListResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	p := page(c, h.pageSize)
	out, err := h.uc.List(c.Context(), GetUserID(c), p.Limit, p.Offset)
	if err != nil {
		return respondSaleError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string           true  "ID de la venta"
// @Param        body  body      dto.SaleRequest  true  "Datos de la venta"
// @Success      200   {object}  dto.SaleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [put]
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	var in dto.SaleRequest
	if err := bind(c, &in); err != nil {
		return respondSaleError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.Context(), GetUserID(c), id, in)
	if err != nil {
		return respondSaleError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar venta
// @Description  Devuelve al stock la cantidad vendida.
// @Tags         sales
// @Security     Bearer
// @Param        id   path  string  true  "ID de la venta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.Context(), GetUserID(c), id); err != nil {
		return respondSaleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Predict godoc
// @Summary      Predecir ventas de un producto para una fecha
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.PredictRequest  true  "Producto y fecha"
// @Success      200   {object}  dto.PredictResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/sales/predict [post]
func (h *SaleHandler) Predict(c *fiber.Ctx) error {
	in, err := predictRequest(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.prediction.Predict(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondSaleError(c, err)
	}
	return c.JSON(out)
}

// Train godoc
// @Summary      Encolar reentrenamiento del modelo de la compañía
// @Description  El entrenamiento corre en el worker; responde 202 con el ID de la tarea.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.PredictRequest  false  "Producto, unidad de tiempo e historial"
// @Success      202   {object}  dto.TrainQueuedResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/sales/predict/train [post]
func (h *SaleHandler) Train(c *fiber.Ctx) error {
	in, err := predictRequest(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.prediction.EnqueueTrain(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondSaleError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(out)
}

// predictRequest parsea el cuerpo (opcional), completa defaults y valida.
func predictRequest(c *fiber.Ctx) (dto.PredictRequest, error) {
	var in dto.PredictRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return in, errInvalidBody
		}
	}
	in.ApplyDefaults()
	return in, in.Validate()
}
