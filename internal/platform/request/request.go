// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the router's parameter extraction and common body decoding,
ensuring consistent error handling.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/shanhai/internal/platform/apperr"
	"github.com/taibuivan/shanhai/internal/platform/ctxutil"
	"github.com/taibuivan/shanhai/internal/platform/validate"
)

// maxBodyBytes caps decoded request bodies; navigation events are tiny.
const maxBodyBytes = 16 << 10

/*
DecodeJSON reads the request body and decodes it into the target structure.

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target interface{}) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxBodyBytes)

	decoder := json.NewDecoder(request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
RequiredSessionID returns the session bound to the request's verified token.

Returns:
  - string: session identifier
  - error: apperr.Unauthorized if the request carries no session token
*/
func RequiredSessionID(request *http.Request) (string, error) {
	claims := ctxutil.GetSession(request.Context())
	if claims == nil {
		return "", apperr.Unauthorized("Session token required")
	}
	return claims.SessionID, nil
}
