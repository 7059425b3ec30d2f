package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/usecase"
)

// SubscriptionHandler planes (públicos), suscripciones y pagos simulados.
type SubscriptionHandler struct {
	plans         *usecase.PlanUseCase
	subscriptions *usecase.SubscriptionUseCase
	payments      *usecase.PaymentUseCase
}

func NewSubscriptionHandler(plans *usecase.PlanUseCase, subscriptions *usecase.SubscriptionUseCase, payments *usecase.PaymentUseCase) *SubscriptionHandler {
	return &SubscriptionHandler{plans: plans, subscriptions: subscriptions, payments: payments}
}

// ListPlans godoc
// @Summary      Listar planes activos
// @Tags         plans
// @Produce      json
// @Success      200  {array}  dto.PlanResponse
// @Router       /api/plans [get]
func (h *SubscriptionHandler) ListPlans(c *fiber.Ctx) error {
	out, err := h.plans.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetPlan godoc
// @Summary      Obtener plan por ID
// @Tags         plans
// @Produce      json
// @Param        id   path      string  true  "ID del plan"
// @Success      200  {object}  dto.PlanResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/plans/{id} [get]
func (h *SubscriptionHandler) GetPlan(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.plans.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateSubscription godoc
// @Summary      Crear suscripción (estado pending hasta el pago)
// @Tags         subscriptions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateSubscriptionRequest  true  "Plan"
// @Success      201   {object}  dto.SubscriptionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/subscriptions [post]
func (h *SubscriptionHandler) CreateSubscription(c *fiber.Ctx) error {
	var in dto.CreateSubscriptionRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.subscriptions.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSubscriptions godoc
// @Summary      Listar mis suscripciones
// @Tags         subscriptions
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SubscriptionResponse
// @Router       /api/subscriptions [get]
func (h *SubscriptionHandler) ListSubscriptions(c *fiber.Ctx) error {
	out, err := h.subscriptions.List(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetSubscription godoc
// @Summary      Obtener suscripción por ID
// @Tags         subscriptions
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la suscripción"
// @Success      200  {object}  dto.SubscriptionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/subscriptions/{id} [get]
func (h *SubscriptionHandler) GetSubscription(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.subscriptions.GetByID(c.Context(), GetUserID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreatePayment godoc
// @Summary      Pagar una suscripción (pasarela simulada)
// @Description  Aprueba el pago, activa la suscripción y registra la transacción.
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreatePaymentRequest  true  "Datos del pago"
// @Success      201   {object}  dto.CreatePaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/payments [post]
func (h *SubscriptionHandler) CreatePayment(c *fiber.Ctx) error {
	var in dto.CreatePaymentRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.payments.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPayments godoc
// @Summary      Listar mis transacciones
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PaymentResponse
// @Router       /api/payments [get]
func (h *SubscriptionHandler) ListPayments(c *fiber.Ctx) error {
	out, err := h.payments.List(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetPayment godoc
// @Summary      Obtener transacción por ID
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la transacción"
// @Success      200  {object}  dto.PaymentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payments/{id} [get]
func (h *SubscriptionHandler) GetPayment(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.payments.GetByID(c.Context(), GetUserID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
