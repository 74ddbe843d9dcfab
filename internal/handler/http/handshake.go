// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-vault-sync/internal/app"
	"github.com/MKhiriev/go-vault-sync/internal/crypto"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/utils"
	"github.com/MKhiriev/go-vault-sync/models"
)

// handshake is the responder side of session establishment. The initiator
// sends its identity and a fresh ephemeral public key; this device combines
// the ephemeral key with its own long-term private key, derives the same
// session keys the initiator derived, and acknowledges with the new session
// ID. No key material crosses the wire beyond the public keys.
func (h *Handler) handshake(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.HandshakeRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.handshake").Msg("invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSONProvided, http.StatusBadRequest)
		return
	}

	peerDeviceID, found := utils.GetPeerDeviceIDFromContext(ctx)
	if !found || peerDeviceID != request.DeviceID {
		log.Err(ErrDeviceMismatch).Str("device_id", request.DeviceID).Send()
		http.Error(w, ErrDeviceMismatch.Error(), http.StatusUnauthorized)
		return
	}

	device, err := h.devices.Get(ctx, request.DeviceID)
	if err != nil {
		log.Err(err).Str("device_id", request.DeviceID).Msg("unknown device attempted handshake")
		http.Error(w, app.MsgDeviceNotPaired, http.StatusForbidden)
		return
	}
	if !device.IsPaired() {
		log.Warn().
			Str("device_id", device.ID).
			Str("pairing_status", string(device.PairingStatus)).
			Msg("unpaired device attempted handshake")
		http.Error(w, app.MsgDeviceNotPaired, http.StatusForbidden)
		return
	}

	ephemeralKey, err := base64.StdEncoding.DecodeString(request.EphemeralPublicKey)
	if err != nil {
		log.Err(err).Msg("malformed ephemeral public key")
		http.Error(w, app.MsgMalformedEphemeralKey, http.StatusBadRequest)
		return
	}

	info, err := h.services.Sessions.Accept(device.ID, device.PublicKey, ephemeralKey)
	if err != nil {
		if errors.Is(err, crypto.ErrKeyExchange) {
			log.Err(err).Str("device_id", device.ID).Msg("key exchange rejected")
			http.Error(w, app.MsgKeyExchangeRejected, http.StatusBadRequest)
			return
		}
		log.Err(err).Str("device_id", device.ID).Msg("error accepting handshake")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	log.Info().
		Str("device_id", device.ID).
		Str("session_id", info.SessionID).
		Msg("handshake accepted")

	response := models.HandshakeResponse{
		DeviceID:  h.app.DeviceID,
		SessionID: info.SessionID,
	}

	utils.WriteJSON(w, response, http.StatusOK)
}
