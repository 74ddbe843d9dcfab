// Package http implements the inbound (responder) side of the sync wire
// protocol.
//
// It exposes two endpoints: POST /handshake, which establishes session keys
// from the initiator's ephemeral public key, and POST /sync, which answers an
// encrypted manifest exchange. Pairing-token authentication, request tracing
// and access logging are handled in middleware before requests reach the
// service layer.
package http
