// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/utils"
)

// auth is an HTTP middleware that enforces pairing-token authentication.
//
// It extracts the bearer token from the "Authorization" header, verifies its
// HMAC-SHA256 signature against the shared pairing key, and stores the
// claimed sender device ID in the request context under
// [utils.PeerDeviceIDCtxKey] before delegating to the next handler.
//
// A valid signature only proves possession of the pairing key; handlers still
// check the device's pairing status against the store, so a revoked device
// passes this middleware but is rejected one layer down.
//
// Requests without a header, with a malformed header, or with an invalid or
// expired token are rejected with HTTP 401 Unauthorized.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		peerDeviceID, err := utils.ValidatePairingToken(tokenString, h.app.PairingKey)
		if err != nil {
			log.Err(err).Msg("pairing token rejected")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		// Store the authenticated peer's device ID in the context so that
		// handlers can compare it against the claimed sender.
		ctx := context.WithValue(r.Context(), utils.PeerDeviceIDCtxKey, peerDeviceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
