// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the pairing-token middleware when inspecting the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned when the incoming request does
	// not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrDeviceMismatch is returned when the device ID claimed inside the
	// request body differs from the one proven by the pairing token.
	ErrDeviceMismatch = errors.New("request device does not match pairing token")
)
