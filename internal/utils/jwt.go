package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GeneratePairingToken creates a signed HMAC-SHA256 JWT proving that the
// sender belongs to the pairing. The token is short-lived and re-signed per
// request; the shared pairing key is exchanged once when the user confirms
// pairing on both devices.
//
// Claims:
//   - Issuer    (iss): the sending device's ID
//   - Subject   (sub): the sending device's ID
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//
// Returns an error if any parameter is empty or zero, or if signing fails.
func GeneratePairingToken(deviceID string, tokenDuration time.Duration, signKey string) (string, error) {
	if deviceID == "" || tokenDuration == 0 || signKey == "" {
		return "", errors.New("invalid params for generating pairing token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    deviceID,
		Subject:   deviceID,
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing pairing token: %w", err)
	}

	return tokenString, nil
}

// ValidatePairingToken verifies the token signature and expiry against the
// shared pairing key and returns the claimed sender device ID.
//
// The returned device ID still has to be checked against the pairing store:
// a valid signature only proves possession of the pairing key, not that the
// pairing is still active.
func ValidatePairingToken(tokenString, signKey string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("error occurred validating pairing token: %w", err)
	}

	deviceID, err := token.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error occurred getting subject from pairing token: %w", err)
	}
	if deviceID == "" {
		return "", errors.New("empty subject error")
	}

	return deviceID, nil
}

// ParseBearerToken extracts the bearer token string from a raw
// "Authorization" HTTP header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
