package domain

import (
	"errors"
	"fmt"
)

// Tipos de error de dominio (sin dependencias externas).
// Los handlers HTTP traducen estos tipos a códigos de estado; el dominio nunca los conoce.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrStorage      = errors.New("falla de almacenamiento")
)

// Conflictos específicos del ledger. Ambos son ErrConflict para errors.Is.
var (
	ErrCategoryInUse = &DomainError{Kind: ErrConflict, Message: "la categoría tiene productos activos"}
	ErrNegativeStock = &DomainError{Kind: ErrConflict, Message: "el stock resultante sería negativo"}
)

// DomainError error con tipo (Kind) y detalle legible para el cliente.
type DomainError struct {
	Kind    error
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap expone la causa original (si existe).
func (e *DomainError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, domain.ErrConflict) sobre errores detallados.
func (e *DomainError) Is(target error) bool {
	if target == e.Kind {
		return true
	}
	t, ok := target.(*DomainError)
	return ok && t.Kind == e.Kind && t.Message == e.Message
}

// NotFound construye un ErrNotFound con detalle.
func NotFound(msg string) error { return &DomainError{Kind: ErrNotFound, Message: msg} }

// Invalid construye un ErrInvalidInput con detalle.
func Invalid(msg string) error { return &DomainError{Kind: ErrInvalidInput, Message: msg} }

// Conflict construye un ErrConflict con detalle.
func Conflict(msg string) error { return &DomainError{Kind: ErrConflict, Message: msg} }

// Storage envuelve una falla de infraestructura. Si err ya es un error de dominio se devuelve tal cual.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsDomain(err) {
		return err
	}
	return &DomainError{Kind: ErrStorage, Message: op, Err: err}
}

// IsDomain indica si err pertenece a alguno de los cuatro tipos del dominio.
func IsDomain(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrConflict) || errors.Is(err, ErrStorage)
}

// Message devuelve el detalle legible de un error de dominio o el texto del error.
func Message(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}
