/*
Copyright 2025 the MrHotel Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package fake

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-logr/logr"

	"github.com/mrhotel/api-tests/pkg/openapi"
)

const (
	problemTypeBadRequest   = "https://tools.ietf.org/html/rfc9110#section-15.5.1"
	problemTypeUnauthorized = "https://tools.ietf.org/html/rfc9110#section-15.5.2"
	problemTypeNotFound     = "https://tools.ietf.org/html/rfc9110#section-15.5.5"
	problemTypeConflict     = "https://tools.ietf.org/html/rfc9110#section-15.5.10"
	problemTypeServerError  = "https://tools.ietf.org/html/rfc9110#section-15.6.1"

	validationTitle = "One or more validation errors occurred."
)

// Error is a HTTP error rendered as a problem details document.
type Error struct {
	status      int
	problemType string
	title       string
	fields      map[string][]string
	err         error
}

func (e *Error) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%d %s", e.status, e.title)

	for field, messages := range e.fields {
		fmt.Fprintf(&b, ", %s: %s", field, strings.Join(messages, "; "))
	}

	if e.err != nil {
		fmt.Fprintf(&b, ": %v", e.err)
	}

	return b.String()
}

func (e *Error) Unwrap() error {
	return e.err
}

// StatusCode returns the HTTP status the error is rendered with.
func (e *Error) StatusCode() int {
	return e.status
}

// WithError attaches the underlying cause, it is logged but never returned
// to the client.
func (e *Error) WithError(err error) *Error {
	e.err = err
	return e
}

// WithField adds a validation message for a request field.
func (e *Error) WithField(field, message string) *Error {
	if e.fields == nil {
		e.fields = map[string][]string{}
	}

	e.fields[field] = append(e.fields[field], message)

	return e
}

// HTTPValidationError is a 400 with per-field messages.
func HTTPValidationError(field, message string) *Error {
	e := &Error{
		status:      http.StatusBadRequest,
		problemType: problemTypeBadRequest,
		title:       validationTitle,
	}

	return e.WithField(field, message)
}

// HTTPBadRequest is a 400 without field details.
func HTTPBadRequest(title string) *Error {
	return &Error{
		status:      http.StatusBadRequest,
		problemType: problemTypeBadRequest,
		title:       title,
	}
}

func HTTPUnauthorized() *Error {
	return &Error{
		status:      http.StatusUnauthorized,
		problemType: problemTypeUnauthorized,
		title:       "Unauthorized",
	}
}

func HTTPNotFound(kind, id string) *Error {
	return &Error{
		status:      http.StatusNotFound,
		problemType: problemTypeNotFound,
		title:       fmt.Sprintf("%s %s not found", kind, id),
	}
}

func HTTPConflict(title string) *Error {
	return &Error{
		status:      http.StatusConflict,
		problemType: problemTypeConflict,
		title:       title,
	}
}

func HTTPServerError(title string) *Error {
	return &Error{
		status:      http.StatusInternalServerError,
		problemType: problemTypeServerError,
		title:       title,
	}
}

// HandleError renders any error, unknown ones become a 500.
func HandleError(log logr.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var herr *Error

	if !errors.As(err, &herr) {
		herr = HTTPServerError("unhandled error").WithError(err)
	}

	if herr.status >= http.StatusInternalServerError {
		log.Error(err, "request failed", "method", r.Method, "path", r.URL.Path)
	} else {
		log.V(1).Info("request rejected", "method", r.Method, "path", r.URL.Path, "error", herr.Error())
	}

	problem := &openapi.ValidationProblem{
		Type:   herr.problemType,
		Title:  herr.title,
		Status: herr.status,
		Errors: herr.fields,
	}

	writeJSON(w, "application/problem+json; charset=utf-8", herr.status, problem)
}
