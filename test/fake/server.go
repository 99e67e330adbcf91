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

// Package fake is an in-memory implementation of the hotel API, used to run
// the end-to-end suites hermetically and to unit test the client.
package fake

import (
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"
)

// requestLogger logs every request at debug verbosity.
func requestLogger(log logr.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.V(1).Info("request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "bytes", ww.BytesWritten(), "duration", time.Since(start))
		})
	}
}

// NewRouter returns the complete hotel API.
func NewRouter(log logr.Logger, h *Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(requestLogger(log))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		HandleError(log, w, r, HTTPNotFound("route", r.URL.Path))
	})

	h.Routes(router)

	return router
}

// Server is a fake hotel API listening on a loopback port.
type Server struct {
	*httptest.Server

	// Handler gives tests access to the fake, e.g. to mint tokens.
	Handler *Handler
}

// NewServer starts a fake with an empty hotel.
func NewServer(log logr.Logger, options *Options) (*Server, error) {
	handler, err := New(log, NewStore(nil), options)
	if err != nil {
		return nil, err
	}

	server := &Server{
		Server:  httptest.NewServer(NewRouter(log, handler)),
		Handler: handler,
	}

	return server, nil
}
