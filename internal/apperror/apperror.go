// Package apperror define los errores de negocio del sistema con código
// legible por máquina y status HTTP sugerido.
package apperror

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

const (
	CodigoNoEncontrado      = "NO_ENCONTRADO"
	CodigoStockInsuficiente = "STOCK_INSUFICIENTE"
	CodigoSobrepago         = "SOBREPAGO"
	CodigoConflicto         = "CONFLICTO"
	CodigoValidacion        = "VALIDACION"
)

type AppError struct {
	Codigo  string `json:"codigo"`
	Mensaje string `json:"mensaje"`

	// Status HTTP sugerido (no se serializa)
	HTTPStatus int `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Codigo, e.Mensaje)
}

// NewNotFound cubre tanto la entidad inexistente como la que pertenece a
// otro usuario: ambas son indistinguibles para el que llama.
func NewNotFound(entidad string) *AppError {
	return &AppError{
		Codigo:     CodigoNoEncontrado,
		Mensaje:    fmt.Sprintf("%s no encontrado", entidad),
		HTTPStatus: http.StatusNotFound,
	}
}

func NewInsufficientStock(disponible int) *AppError {
	return &AppError{
		Codigo:     CodigoStockInsuficiente,
		Mensaje:    fmt.Sprintf("Stock insuficiente. Disponible: %d unidades", disponible),
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

func NewOverpayment(saldoPendiente decimal.Decimal) *AppError {
	return &AppError{
		Codigo:     CodigoSobrepago,
		Mensaje:    fmt.Sprintf("El monto excede el saldo pendiente (%s)", saldoPendiente.StringFixed(2)),
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

func NewConflict(mensaje string) *AppError {
	return &AppError{
		Codigo:     CodigoConflicto,
		Mensaje:    mensaje,
		HTTPStatus: http.StatusConflict,
	}
}

func NewValidation(mensaje string) *AppError {
	return &AppError{
		Codigo:     CodigoValidacion,
		Mensaje:    mensaje,
		HTTPStatus: http.StatusBadRequest,
	}
}
