// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-vault-sync/internal/app"
	"github.com/MKhiriev/go-vault-sync/internal/crypto"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/service"
	"github.com/MKhiriev/go-vault-sync/internal/utils"
	"github.com/MKhiriev/go-vault-sync/models"
)

// sync answers one encrypted manifest exchange. The outer packet is resolved
// to a session by its device ID and decrypted; failures before a usable
// session exists surface as plain HTTP errors so the initiator can handshake
// again. Once the request decrypts, every outcome travels back inside an
// encrypted response with an explicit status code.
//
// The responder only reports its own manifest and the conflicts it detects.
// Applying the initiator's entries locally happens when this device runs its
// own sync attempt against the peer; each side pulls, neither side pushes.
func (h *Handler) sync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var packet models.EncryptedPacket
	if err := json.NewDecoder(r.Body).Decode(&packet); err != nil {
		log.Err(err).Str("func", "*Handler.sync").Msg("invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSONProvided, http.StatusBadRequest)
		return
	}

	peerDeviceID, found := utils.GetPeerDeviceIDFromContext(ctx)
	if !found || peerDeviceID != packet.DeviceID {
		log.Err(ErrDeviceMismatch).Str("device_id", packet.DeviceID).Send()
		http.Error(w, ErrDeviceMismatch.Error(), http.StatusUnauthorized)
		return
	}

	var request models.SyncRequest
	if err := h.services.Sessions.Decrypt(packet.DeviceID, packet, &request); err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrSessionExpired):
			log.Err(err).Str("device_id", packet.DeviceID).Msg("no usable session, handshake required")
			http.Error(w, app.MsgHandshakeRequired, http.StatusUnauthorized)
		case errors.Is(err, crypto.ErrAuthenticationFailed):
			log.Err(err).Str("device_id", packet.DeviceID).Msg("packet authentication failed")
			http.Error(w, app.MsgPacketAuthenticationFailed, http.StatusUnauthorized)
		default:
			log.Err(err).Str("device_id", packet.DeviceID).Msg("malformed packet")
			http.Error(w, app.MsgMalformedPacket, http.StatusBadRequest)
		}
		return
	}

	response := h.answer(r, request)

	encrypted, err := h.services.Sessions.Encrypt(packet.DeviceID, response)
	if err != nil {
		log.Err(err).Str("device_id", packet.DeviceID).Msg("error encrypting sync response")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, encrypted, http.StatusOK)
}

// answer builds the plaintext reply to a decrypted sync request. Pairing and
// vault failures map to explicit statuses rather than transport errors; the
// initiator distinguishes them without another round trip.
func (h *Handler) answer(r *http.Request, request models.SyncRequest) models.SyncResponse {
	ctx := r.Context()
	log := logger.FromRequest(r)

	response := models.SyncResponse{
		RequestID: request.RequestID,
		DeviceID:  h.app.DeviceID,
	}

	device, err := h.devices.Get(ctx, request.DeviceID)
	if err != nil || !device.IsPaired() {
		log.Warn().Str("device_id", request.DeviceID).Msg("sync request from unpaired device")
		response.Status = models.StatusDeviceNotPaired
		return response
	}

	entries, err := h.vault.ListEntries(ctx, request.VaultID)
	if err != nil {
		log.Err(err).Str("vault_id", request.VaultID).Msg("error listing vault entries")
		response.Status = models.StatusVaultNotFound
		return response
	}

	manifest, err := h.services.Manifests.Build(ctx, request.DeviceID, request.VaultID, entries)
	if err != nil {
		log.Err(err).Str("vault_id", request.VaultID).Msg("error building manifest")
		response.Status = models.StatusError
		response.Error = app.MsgErrorBuildingManifest
		return response
	}

	conflicts := h.services.Conflicts.Detect(manifest, request.Manifest)

	response.Manifest = &manifest
	if len(conflicts) > 0 {
		log.Info().
			Str("device_id", request.DeviceID).
			Str("vault_id", request.VaultID).
			Int("conflicts", len(conflicts)).
			Msg("sync exchange detected conflicts")
		response.Status = models.StatusConflict
		response.Conflicts = conflicts
		return response
	}

	log.Info().
		Str("device_id", request.DeviceID).
		Str("vault_id", request.VaultID).
		Int("entries", len(manifest.Entries)).
		Msg("sync exchange answered")
	response.Status = models.StatusSuccess
	return response
}
