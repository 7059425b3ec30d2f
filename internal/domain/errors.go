package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrDocumentExists     = errors.New("ya existe un usuario con este número de documento")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")

	// Tenancy y suscripciones
	ErrNoCompany            = errors.New("el usuario no tiene una compañía asignada")
	ErrSubscriptionRequired = errors.New("necesitas una suscripción activa para crear una compañía, por favor adquiere un plan")
	ErrCompanyLimit         = errors.New("ya tienes una compañía registrada, tu plan actual no permite crear más compañías")
	ErrActiveSubscription   = errors.New("ya tienes una suscripción activa")
	ErrUnknownPermission    = errors.New("permiso desconocido")
	ErrNotEmployee          = errors.New("el usuario no es empleado de esta compañía")

	// Predicción
	ErrInsufficientData = errors.New("datos insuficientes para entrenar el modelo")
	ErrModelStale       = errors.New("modelo inexistente o desactualizado")

	// Infraestructura opcional no configurada (MinIO, cola)
	ErrUnavailable = errors.New("servicio no disponible")
)
