package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d sqlite database file path
//	-c/-config json file path with configs
//	-device-id this device's identifier
//	-device-name this device's display name
//	-pairing-key shared pairing secret
//	-identity-key identity key file path
//	-skew-window conflict skew window (e.g., "5m")
//	-request-timeout inbound request timeout (e.g., "30s")
//	-peer-timeout outbound peer request timeout (e.g., "15s")
//	-queue-interval retry queue scan interval (e.g., "60s")
//	-rotation-interval session key rotation interval (e.g., "30m")
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var deviceID string
	var deviceName string
	var pairingKey string
	var identityKeyPath string
	var skewWindow time.Duration
	var requestTimeout time.Duration
	var peerTimeout time.Duration
	var queueInterval time.Duration
	var rotationInterval time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "SQLite database file path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&deviceID, "device-id", "", "Device identifier")
	flag.StringVar(&deviceName, "device-name", "", "Device display name")
	flag.StringVar(&pairingKey, "pairing-key", "", "Shared pairing secret")
	flag.StringVar(&identityKeyPath, "identity-key", "", "Identity key file path")
	flag.DurationVar(&skewWindow, "skew-window", 0, "Conflict skew window (e.g., 5m)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Inbound request timeout (e.g., 30s)")
	flag.DurationVar(&peerTimeout, "peer-timeout", 0, "Outbound peer request timeout (e.g., 15s)")
	flag.DurationVar(&queueInterval, "queue-interval", 0, "Retry queue scan interval (e.g., 60s)")
	flag.DurationVar(&rotationInterval, "rotation-interval", 0, "Session key rotation interval (e.g., 30m)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			DeviceID:        deviceID,
			DeviceName:      deviceName,
			PairingKey:      pairingKey,
			IdentityKeyPath: identityKeyPath,
			SkewWindow:      skewWindow,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			RequestTimeout: peerTimeout,
		},
		Workers: Workers{
			QueueInterval:    queueInterval,
			RotationInterval: rotationInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns the empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
