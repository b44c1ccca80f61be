package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/restdb/api/apiresource"
	"github.com/fulldump/restdb/collection"
	"github.com/fulldump/restdb/database"
	"github.com/fulldump/restdb/service"
)

var ErrUnavailable = errors.New("temporary unavailable")

type PrettyError struct {
	Message     string `json:"message"`
	Description string `json:"description"`
}

func (p PrettyError) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"error": struct {
			Message     string `json:"message"`
			Description string `json:"description"`
		}{
			p.Message,
			p.Description,
		},
	})
}

func (p PrettyError) MarshalTo(w io.Writer) error {
	return json.NewEncoder(w).Encode(p)
}

func InterceptorUnavailable(db *database.Database) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {

			status := db.GetStatus()
			if status == database.StatusOpening || status == database.StatusClosing {
				box.SetError(ctx, fmt.Errorf("%w: %s", ErrUnavailable, status))
				return
			}
			next(ctx)
		}
	}
}

// errorStatus maps an error to its HTTP status and a human description.
func errorStatus(ctx context.Context, err error) (int, string) {

	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError

	switch {
	case errors.Is(err, box.ErrResourceNotFound):
		return http.StatusNotFound, fmt.Sprintf("resource '%s' not found", box.GetRequest(ctx).URL.String())
	case errors.Is(err, box.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, fmt.Sprintf("method '%s' not allowed", box.GetRequest(ctx).Method)
	case errors.Is(err, collection.ErrNotFound):
		return http.StatusNotFound, "record not found"
	case errors.Is(err, service.ErrorCollectionNotFound):
		return http.StatusNotFound, "collection not found"
	case errors.Is(err, collection.ErrInvalidID):
		return http.StatusBadRequest, "id must be a number or a non empty string"
	case errors.Is(err, database.ErrInvalidName):
		return http.StatusBadRequest, "collection names cannot be empty, start with '_' or '.' or contain slashes"
	case errors.Is(err, apiresource.ErrMalformedBody),
		errors.As(err, &syntaxError),
		errors.As(err, &typeError):
		return http.StatusBadRequest, "Malformed JSON"
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable, "the database is not operating, retry later"
	case errors.Is(err, collection.ErrDuplicateID):
		return http.StatusInternalServerError, "a record with the same id already exists"
	}

	return http.StatusInternalServerError, "Unexpected error"
}

// PrettyErrorInterceptor renders the error left in the context. Interceptors
// that set errors (RecoverFromPanic, InterceptorUnavailable) go inside it.
func PrettyErrorInterceptor(next box.H) box.H {
	return func(ctx context.Context) {

		next(ctx)

		err := box.GetError(ctx)
		if err == nil {
			return
		}
		w := box.GetResponse(ctx)

		status, description := errorStatus(ctx, err)
		w.WriteHeader(status)
		PrettyError{
			Message:     err.Error(),
			Description: description,
		}.MarshalTo(w)
	}
}
