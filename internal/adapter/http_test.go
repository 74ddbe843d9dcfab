package adapter

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/utils"
	"github.com/MKhiriev/go-vault-sync/models"
)

const testPairingKey = "test-pairing-key"

func newTestAdapter(t *testing.T) PeerAdapter {
	t.Helper()
	return NewHTTPPeerAdapter(
		config.Adapter{RequestTimeout: 2 * time.Second, TokenDuration: time.Minute},
		config.App{DeviceID: "laptop-1", PairingKey: testPairingKey},
		logger.Nop(),
	)
}

// deviceFor converts an httptest server URL into a Device record pointing at it.
func deviceFor(t *testing.T, srv *httptest.Server) models.Device {
	t.Helper()
	host, portStr, err := net.SplitHostPort(srv.Listener.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	return models.Device{
		ID:            "phone-1",
		Address:       host,
		Port:          port,
		PairingStatus: models.PairingPaired,
	}
}

func TestHandshake_Success(t *testing.T) {
	var gotReq models.HandshakeRequest
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/handshake", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.HandshakeResponse{
			DeviceID:  "phone-1",
			SessionID: "session-42",
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t)
	ack, err := a.Handshake(context.Background(), deviceFor(t, srv), models.HandshakeRequest{
		DeviceID:           "laptop-1",
		EphemeralPublicKey: "a2V5",
	})
	require.NoError(t, err)

	assert.Equal(t, "phone-1", ack.DeviceID)
	assert.Equal(t, "session-42", ack.SessionID)
	assert.Equal(t, "laptop-1", gotReq.DeviceID)

	// The bearer token must verify against the shared pairing key and name
	// the sending device.
	token, err := utils.ParseBearerToken(gotAuth)
	require.NoError(t, err)
	sender, err := utils.ValidatePairingToken(token, testPairingKey)
	require.NoError(t, err)
	assert.Equal(t, "laptop-1", sender)
}

func TestHandshake_IncompleteResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t)
	_, err := a.Handshake(context.Background(), deviceFor(t, srv), models.HandshakeRequest{DeviceID: "laptop-1"})
	assert.ErrorIs(t, err, ErrProtocol)
}

func TestSync_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sync", r.URL.Path)

		var packet models.EncryptedPacket
		require.NoError(t, json.NewDecoder(r.Body).Decode(&packet))
		assert.Equal(t, "laptop-1", packet.DeviceID)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.EncryptedPacket{
			DeviceID:   "phone-1",
			Nonce:      "bm9uY2U=",
			Ciphertext: "Y2lwaGVy",
			HMAC:       "bWFj",
			Timestamp:  time.Now().Unix(),
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t)
	reply, err := a.Sync(context.Background(), deviceFor(t, srv), models.EncryptedPacket{
		DeviceID:   "laptop-1",
		Nonce:      "bm9uY2U=",
		Ciphertext: "Y2lwaGVy",
		HMAC:       "bWFj",
		Timestamp:  time.Now().Unix(),
	})
	require.NoError(t, err)
	assert.Equal(t, "phone-1", reply.DeviceID)
	assert.NotEmpty(t, reply.Ciphertext)
}

func TestSync_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		expected error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"forbidden", http.StatusForbidden, ErrDeviceNotPaired},
		{"not found", http.StatusNotFound, ErrVaultNotFound},
		{"bad request", http.StatusBadRequest, ErrProtocol},
		{"bad gateway", http.StatusBadGateway, ErrNetwork},
		{"teapot", http.StatusTeapot, ErrProtocol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, tt.name, tt.status)
			}))
			defer srv.Close()

			a := newTestAdapter(t)
			_, err := a.Sync(context.Background(), deviceFor(t, srv), models.EncryptedPacket{DeviceID: "laptop-1"})
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestSync_ConnectionRefused(t *testing.T) {
	// Grab a port that nothing listens on, then release it.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	host, portStr, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	a := newTestAdapter(t)
	_, err = a.Sync(context.Background(), models.Device{
		ID:      "phone-1",
		Address: host,
		Port:    port,
	}, models.EncryptedPacket{DeviceID: "laptop-1"})
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestSync_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	a := NewHTTPPeerAdapter(
		config.Adapter{RequestTimeout: 20 * time.Millisecond, TokenDuration: time.Minute},
		config.App{DeviceID: "laptop-1", PairingKey: testPairingKey},
		logger.Nop(),
	)

	_, err := a.Sync(context.Background(), deviceFor(t, srv), models.EncryptedPacket{DeviceID: "laptop-1"})
	assert.ErrorIs(t, err, ErrNetwork)
}
