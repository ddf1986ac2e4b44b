package server

import (
	"errors"
	"net/http"

	"github.com/spigell/resume-scorer/internal/resume"
)

// HTTPStatus maps an error to the response status code.
func HTTPStatus(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, resume.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage hides internal failure details from clients.
func publicMessage(err error) string {
	if HTTPStatus(err) == http.StatusInternalServerError {
		return "internal error"
	}
	return err.Error()
}
