// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/utils"
	"github.com/MKhiriev/go-vault-sync/models"
)

type httpPeerAdapter struct {
	client *utils.HTTPClient

	deviceID      string
	pairingKey    string
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewHTTPPeerAdapter constructs an HTTP implementation of [PeerAdapter].
// The target address and port come from the pairing store per call, so the
// underlying client carries only the request timeout; each request is signed
// with a freshly generated short-lived pairing token.
func NewHTTPPeerAdapter(adapterCfg config.Adapter, appCfg config.App, logger *logger.Logger) PeerAdapter {
	client := utils.NewHTTPClient()
	client.SetTimeout(adapterCfg.RequestTimeout)

	return &httpPeerAdapter{
		client:        client,
		deviceID:      appCfg.DeviceID,
		pairingKey:    appCfg.PairingKey,
		tokenDuration: adapterCfg.TokenDuration,
		logger:        logger,
	}
}

// Handshake implements [PeerAdapter]. It POSTs req to the peer's /handshake
// endpoint and decodes the acknowledgement. A transport failure wraps
// [ErrNetwork]; a response that is not a handshake acknowledgement wraps
// [ErrProtocol].
func (h *httpPeerAdapter) Handshake(ctx context.Context, device models.Device, req models.HandshakeRequest) (models.HandshakeResponse, error) {
	token, err := utils.GeneratePairingToken(h.deviceID, h.tokenDuration, h.pairingKey)
	if err != nil {
		return models.HandshakeResponse{}, fmt.Errorf("generate pairing token: %w", err)
	}

	var ack models.HandshakeResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(token).
		SetBody(req).
		SetResult(&ack).
		Post(peerURL(device, "/handshake"))
	if err != nil {
		return models.HandshakeResponse{}, fmt.Errorf("%w: handshake request: %w", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.HandshakeResponse{}, err
	}

	if ack.DeviceID == "" || ack.SessionID == "" {
		return models.HandshakeResponse{}, fmt.Errorf("%w: incomplete handshake response", ErrProtocol)
	}

	return ack, nil
}

// Sync implements [PeerAdapter]. It POSTs the encrypted packet to the peer's
// /sync endpoint and returns the peer's encrypted response packet without
// inspecting either payload; decryption belongs to the session layer.
func (h *httpPeerAdapter) Sync(ctx context.Context, device models.Device, packet models.EncryptedPacket) (models.EncryptedPacket, error) {
	token, err := utils.GeneratePairingToken(h.deviceID, h.tokenDuration, h.pairingKey)
	if err != nil {
		return models.EncryptedPacket{}, fmt.Errorf("generate pairing token: %w", err)
	}

	var reply models.EncryptedPacket

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(token).
		SetBody(packet).
		SetResult(&reply).
		Post(peerURL(device, "/sync"))
	if err != nil {
		return models.EncryptedPacket{}, fmt.Errorf("%w: sync request: %w", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.EncryptedPacket{}, err
	}

	if reply.DeviceID == "" || reply.Ciphertext == "" {
		return models.EncryptedPacket{}, fmt.Errorf("%w: incomplete sync response", ErrProtocol)
	}

	return reply, nil
}

func peerURL(device models.Device, path string) string {
	return "http://" + net.JoinHostPort(device.Address, strconv.Itoa(device.Port)) + path
}
