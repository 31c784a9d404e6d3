package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
)

// InsufficientStockError identifica el producto que no pudo cumplirse y, si aplica,
// el material que faltó para fabricarlo. Envuelve ErrInsufficientStock para errors.Is.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	MaterialID  string // vacío si faltó stock terminado y no hay receta
}

func (e *InsufficientStockError) Error() string {
	if e.MaterialID != "" {
		return fmt.Sprintf("stock insuficiente para el producto %s: falta material %s", e.ProductName, e.MaterialID)
	}
	return fmt.Sprintf("stock insuficiente para el producto %s", e.ProductName)
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
