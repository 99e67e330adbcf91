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
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

func writeJSON(w http.ResponseWriter, contentType string, status int, body any) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)

	// The status has gone, nothing useful can be done with an error here.
	_ = json.NewEncoder(w).Encode(body)
}

func writeJSONResponse(w http.ResponseWriter, status int, body any) {
	writeJSON(w, "application/json; charset=utf-8", status, body)
}

func writeNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// readJSONBody decodes the request body, syntax errors are reported against
// the document root the way model binding does.
func readJSONBody(r *http.Request, v any) error {
	decoder := json.NewDecoder(r.Body)

	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return HTTPValidationError("", "A non-empty request body is required.").WithError(err)
		}

		return HTTPValidationError("$", "The JSON value could not be converted.").WithError(err)
	}

	return nil
}
