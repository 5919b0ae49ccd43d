package handler

import (
	"errors"
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gorilla/mux"

	"dms/internal/domain"
	"dms/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var maxBytesErr *http.MaxBytesError
	var fieldErrs validation.Errors

	switch {
	case errors.Is(err, domain.ErrValidation) && errors.As(err, &fieldErrs):
		httputil.RespondErrorWithExtras(w, http.StatusBadRequest, err.Error(), map[string]any{
			"errors": fieldMessages(fieldErrs),
		})
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUnsupportedFormat):
		httputil.RespondError(w, http.StatusUnsupportedMediaType, err.Error())
	case errors.As(err, &maxBytesErr):
		httputil.RespondError(w, http.StatusRequestEntityTooLarge, "upload exceeds the size limit")
	case errors.Is(err, domain.ErrUpstream):
		httputil.RespondError(w, http.StatusBadGateway, "upstream service failed")
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// fieldMessages flattens ozzo field errors into field name -> message
func fieldMessages(errs validation.Errors) map[string]string {
	messages := make(map[string]string, len(errs))
	for field, err := range errs {
		messages[field] = err.Error()
	}
	return messages
}

// pathID reads the {id} route variable
func pathID(r *http.Request) (int, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, &domain.ValidationError{Message: "id must be a positive integer"}
	}
	return id, nil
}

// queryInt reads a required integer query parameter as a validation error
func queryInt(r *http.Request, name string) (int, error) {
	value, err := httputil.QueryInt(r, name)
	if err != nil {
		return 0, &domain.ValidationError{Message: err.Error()}
	}
	return value, nil
}
