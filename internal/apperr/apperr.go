package apperr

import (
	"errors"
	"fmt"
)

// Kind clasifica el error para que la capa HTTP lo traduzca a un status estable.
type Kind string

const (
	KindNotFound              Kind = "not_found"
	KindNotAuthorized         Kind = "not_authorized"
	KindValidation            Kind = "validation_failed"
	KindDataIntegrity         Kind = "data_integrity_violation"
	KindDoctorProfileNotFound Kind = "doctor_profile_not_found"
	KindInvalidTransition     Kind = "invalid_transition"
)

// Error es el error tipado que devuelven los casos de uso.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Code
	}
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is compara por Kind, así errors.Is(err, apperr.ErrNotFound) funciona con cualquier code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Code != "" && t.Code != e.Code {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrNotFound              = &Error{Kind: KindNotFound}
	ErrNotAuthorized         = &Error{Kind: KindNotAuthorized}
	ErrValidation            = &Error{Kind: KindValidation}
	ErrDataIntegrity         = &Error{Kind: KindDataIntegrity}
	ErrDoctorProfileNotFound = &Error{Kind: KindDoctorProfileNotFound}
	ErrInvalidTransition     = &Error{Kind: KindInvalidTransition}
)

func NotFound(code, msg string) error {
	return &Error{Kind: KindNotFound, Code: code, Message: msg}
}

func NotAuthorized(code, msg string) error {
	return &Error{Kind: KindNotAuthorized, Code: code, Message: msg}
}

func Validation(code, msg string) error {
	return &Error{Kind: KindValidation, Code: code, Message: msg}
}

func DataIntegrity(code, msg string) error {
	return &Error{Kind: KindDataIntegrity, Code: code, Message: msg}
}

func DoctorProfileNotFound(userID string) error {
	return &Error{
		Kind:    KindDoctorProfileNotFound,
		Code:    "doctor_profile_not_found",
		Message: fmt.Sprintf("no doctor profile for user %s", userID),
	}
}

func InvalidTransition(code, msg string) error {
	return &Error{Kind: KindInvalidTransition, Code: code, Message: msg}
}

// KindOf devuelve el Kind del primer *Error en la cadena, o "" si no hay.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// CodeOf devuelve el Code del primer *Error en la cadena.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
