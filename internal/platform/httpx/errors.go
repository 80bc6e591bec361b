package httpx

import (
	"errors"
	"net/http"
	"strings"
)

// Sentinel errors shared by the domain services.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrValidation indicates missing or malformed required input.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidStatus indicates a status value outside the allowed set.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrSequenceExhausted indicates the sequence allocation retry budget ran out.
	// It signals write contention, not bad input.
	ErrSequenceExhausted = errors.New("sequence allocation exhausted")
	// ErrRenderFailure indicates the PDF document could not be constructed.
	ErrRenderFailure = errors.New("document render failed")
)

// RespondError maps domain errors onto HTTP responses. Unexpected errors
// become a generic 500 so internal detail never reaches the caller.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		Fail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrValidation):
		Fail(w, http.StatusBadRequest, strings.TrimPrefix(err.Error(), ErrValidation.Error()+": "))
	case errors.Is(err, ErrInvalidStatus):
		Fail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrSequenceExhausted):
		Fail(w, http.StatusInternalServerError, "could not allocate a quotation number, please try again")
	case errors.Is(err, ErrRenderFailure):
		Fail(w, http.StatusInternalServerError, "error generating PDF")
	default:
		Fail(w, http.StatusInternalServerError, "something went wrong")
	}
}
