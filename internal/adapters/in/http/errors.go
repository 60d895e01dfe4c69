package http

import (
	"errors"
	"fmt"
	"net/http"

	"tracker/internal/core/domain/model/component"
	"tracker/internal/core/ports"
	"tracker/internal/pkg/errs"
)

// errorBody maps an application error to its response. Rejected transitions
// carry the allowed set so the client can re-prompt. Lifecycle rejections are
// worded with status labels; raw status codes only appear in the structured
// fields.
func errorBody(err error) Error {
	var (
		invalid *component.InvalidTransitionError
		missing *component.MissingDocumentError
	)
	switch {
	case errors.As(err, &invalid):
		allowed := make([]Status, len(invalid.Allowed))
		for i, s := range invalid.Allowed {
			allowed[i] = Status{Code: s.Code(), Label: s.Label()}
		}
		return Error{
			Code:    http.StatusUnprocessableEntity,
			Message: fmt.Sprintf("Status %q is not allowed for this component", invalid.Target.Label()),
			Allowed: allowed,
		}
	case errors.As(err, &missing):
		return Error{
			Code:    http.StatusUnprocessableEntity,
			Message: fmt.Sprintf("Status %q requires a transport document number and date", missing.Target.Label()),
		}
	case errors.Is(err, component.ErrMissingDocument):
		return Error{Code: http.StatusUnprocessableEntity, Message: "A transport document number and date are required"}
	case errors.Is(err, errs.ErrObjectNotFound):
		return Error{Code: http.StatusNotFound, Message: err.Error()}
	case errors.Is(err, errs.ErrVersionIsInvalid), errors.Is(err, ports.ErrComponentIsLocked):
		return Error{Code: http.StatusConflict, Message: err.Error()}
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return Error{Code: http.StatusBadRequest, Message: err.Error()}
	default:
		return Error{Code: http.StatusInternalServerError, Message: "Internal server error"}
	}
}
