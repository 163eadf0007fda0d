// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/grocerylists/pkg/httpx"
	grocerydomain "github.com/ghuser/grocerylists/services/grocery/domain"
)

// Writer writes errors as {"error": message} responses. In production mode
// the message of a 5xx response is replaced by the generic status text.
type Writer struct {
	production bool
}

// NewWriter returns a Writer for the given environment.
func NewWriter(isProduction bool) Writer {
	return Writer{production: isProduction}
}

// Write maps err to an HTTP status code and writes a JSON error response.
func (wr Writer) Write(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	httpx.JSONError(w, status, httpx.SafeError(err, status, wr.production))
}

// WriteError maps err to an HTTP status code and writes a JSON error response
// carrying the full error message.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	Writer{}.Write(w, err)
}

// StatusFor returns the HTTP status code err maps to.
func StatusFor(err error) int {
	return mapErrorToStatus(err)
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, grocerydomain.ErrListNotFound),
		errors.Is(err, grocerydomain.ErrItemNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, grocerydomain.ErrItemAlreadyExists):
		return http.StatusConflict // 409
	case errors.Is(err, grocerydomain.ErrInvalidListName),
		errors.Is(err, grocerydomain.ErrInvalidItemName),
		errors.Is(err, grocerydomain.ErrInvalidSortField):
		return http.StatusBadRequest // 400
	default:
		return http.StatusInternalServerError // 500
	}
}
