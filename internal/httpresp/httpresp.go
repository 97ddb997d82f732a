// Package httpresp centraliza la escritura de respuestas JSON y el mapeo de
// errores de dominio a status HTTP.
package httpresp

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"vet-clinic/internal/apperr"
)

const maxBodyBytes = 1 << 20

type ErrorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// StatusFor traduce el Kind a status. Lo desconocido es 500.
func StatusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound, apperr.KindDoctorProfileNotFound:
		return http.StatusNotFound
	case apperr.KindNotAuthorized:
		if apperr.CodeOf(err) == "unauthenticated" {
			return http.StatusUnauthorized
		}
		return http.StatusForbidden
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindDataIntegrity:
		return http.StatusUnprocessableEntity
	case apperr.KindInvalidTransition:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error escribe el error. Los 500 no exponen el detalle interno.
func Error(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		JSON(w, status, ErrorBody{Error: "internal error"})
		return
	}

	body := ErrorBody{Error: string(apperr.KindOf(err)), Code: apperr.CodeOf(err)}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		body.Message = ae.Message
	}
	JSON(w, status, body)
}

// Decode lee JSON del body; un body inválido es ValidationFailed.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Validation("invalid_json", "request body is empty")
		}
		return apperr.Validation("invalid_json", "invalid json: "+err.Error())
	}
	return nil
}
