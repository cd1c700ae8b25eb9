package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeUnauthenticated   = "UNAUTHENTICATED"
	CodeAuth              = "AUTH_ERROR"
	CodeRemoteUnavailable = "REMOTE_UNAVAILABLE"
	CodeNotFound          = "NOT_FOUND"
	CodeMalformedRecord   = "MALFORMED_RECORD"
	CodeInternal          = "INTERNAL_ERROR"
)

// ErrUnauthenticated means there is no current principal for the request.
var ErrUnauthenticated = errors.New("unauthenticated")

// ValidationError lists every missing or invalid input field with a reason.
type ValidationError struct {
	Fields map[string]string
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	names := e.FieldNames()
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s %s", name, e.Fields[name]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// FieldNames returns the offending field names in a stable order.
func (e *ValidationError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether field failed validation.
func (e *ValidationError) Has(field string) bool {
	_, ok := e.Fields[field]
	return ok
}

// RemoteUnavailableError wraps a transport or store failure.
type RemoteUnavailableError struct {
	Op  string
	Err error
}

func RemoteUnavailable(op string, err error) *RemoteUnavailableError {
	return &RemoteUnavailableError{Op: op, Err: err}
}

func (e *RemoteUnavailableError) Error() string {
	return fmt.Sprintf("remote unavailable: %s: %v", e.Op, e.Err)
}

func (e *RemoteUnavailableError) Unwrap() error {
	return e.Err
}

type NotFoundError struct {
	Resource string
	ID       string
}

func NotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// MalformedRecordError reports a catalog record that lacks a field its variant requires.
type MalformedRecordError struct {
	Collection string
	ID         string
	Field      string
}

func MalformedRecord(collection, id, field string) *MalformedRecordError {
	return &MalformedRecordError{Collection: collection, ID: id, Field: field}
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record %s/%s: missing %s", e.Collection, e.ID, e.Field)
}

// AuthError is returned when credentials are rejected by the identity provider.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication failed: %s (caused by: %v)", e.Reason, e.Err)
	}
	return "authentication failed: " + e.Reason
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsRemoteUnavailable(err error) bool {
	var target *RemoteUnavailableError
	return errors.As(err, &target)
}

func IsMalformedRecord(err error) bool {
	var target *MalformedRecordError
	return errors.As(err, &target)
}

// Code returns the stable error code for err.
func Code(err error) string {
	var (
		validation *ValidationError
		remote     *RemoteUnavailableError
		notFound   *NotFoundError
		malformed  *MalformedRecordError
		authErr    *AuthError
	)
	switch {
	case errors.As(err, &validation):
		return CodeValidation
	case errors.Is(err, ErrUnauthenticated):
		return CodeUnauthenticated
	case errors.As(err, &authErr):
		return CodeAuth
	case errors.As(err, &notFound):
		return CodeNotFound
	case errors.As(err, &malformed):
		return CodeMalformedRecord
	case errors.As(err, &remote):
		return CodeRemoteUnavailable
	default:
		return CodeInternal
	}
}

// HTTPStatus maps err onto the status the presentation layer should answer with.
func HTTPStatus(err error) int {
	switch Code(err) {
	case CodeValidation:
		return http.StatusUnprocessableEntity
	case CodeUnauthenticated, CodeAuth:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeMalformedRecord:
		return http.StatusBadGateway
	case CodeRemoteUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
