package config

import (
	"strings"
	"time"

	"github.com/go-i2p/logger"
)

// Version is the sshwire release announced in the default identification line.
const Version = "0.1.0"

// Config contains every tunable of the wire stack.
type Config struct {
	// SSH identification and version exchange
	SSH SSHConfig

	// Binary packet framing
	Wire WireConfig

	// Connection handling
	Network NetworkConfig
}

// SSHConfig contains identification line and version exchange settings.
type SSHConfig struct {
	// SoftwareVersion is sent as SSH-2.0-<SoftwareVersion>
	// Default: sshwire_<Version>
	SoftwareVersion string

	// Comments follow the software version after a space
	// Default: empty
	Comments string

	// MaxPreambleLines is how many non-identification lines the peer may send first
	// Default: 1024
	MaxPreambleLines int

	// MaxLineLength bounds each line read during the exchange, CR LF included
	// Default: 1024 bytes
	MaxLineLength int
}

// WireConfig contains packet framing settings.
type WireConfig struct {
	// ReadChunkSize is how much one read from the connection asks for
	// Default: 1024 bytes
	ReadChunkSize int

	// MaxPacketLength is the largest packet_length accepted
	// Default: 256 KiB
	MaxPacketLength int

	// PaddingBlockSize is the alignment of outgoing packets
	// Default: 8 (the minimum RFC 4253 allows)
	PaddingBlockSize int

	// MaxExtraPaddingBlocks adds up to this many random extra blocks of padding
	// Default: 0
	MaxExtraPaddingBlocks int

	// StrictBooleans rejects boolean bytes other than 0 and 1
	// Default: false (accept with a warning)
	StrictBooleans bool

	// MAC names the integrity algorithm
	// Default: "none"
	MAC string
}

// NetworkConfig contains connection settings.
type NetworkConfig struct {
	// DialTimeout bounds the TCP connect
	// Default: 10 seconds
	DialTimeout time.Duration

	// IOTimeout is the deadline applied to an operation whose context has none.
	// Zero disables it.
	// Default: 30 seconds
	IOTimeout time.Duration
}

// Defaults returns a Config with all default values set.
// This is the single source of truth for configuration defaults.
func Defaults() Config {
	return Config{
		SSH:     buildSSHDefaults(),
		Wire:    buildWireDefaults(),
		Network: buildNetworkDefaults(),
	}
}

func buildSSHDefaults() SSHConfig {
	return SSHConfig{
		SoftwareVersion:  "sshwire_" + Version,
		MaxPreambleLines: 1024,
		MaxLineLength:    1024,
	}
}

func buildWireDefaults() WireConfig {
	return WireConfig{
		ReadChunkSize:    1024,
		MaxPacketLength:  256 * 1024,
		PaddingBlockSize: 8,
		MAC:              "none",
	}
}

func buildNetworkDefaults() NetworkConfig {
	return NetworkConfig{
		DialTimeout: 10 * time.Second,
		IOTimeout:   30 * time.Second,
	}
}

// Validate checks if the provided configuration values are usable.
// Returns an error describing the first invalid value found.
func Validate(cfg Config) error {
	log.WithFields(logger.Fields{
		"at":     "config.Validate",
		"reason": "verification_requested",
	}).Debug("validating configuration")
	validators := []func() error{
		func() error { return validateSSH(cfg.SSH) },
		func() error { return validateWire(cfg.Wire) },
		func() error { return validateNetwork(cfg.Network) },
	}
	for _, validator := range validators {
		if err := validator(); err != nil {
			log.WithError(err).Error("configuration validation failed")
			return err
		}
	}
	return nil
}

func validateSSH(ssh SSHConfig) error {
	if ssh.SoftwareVersion == "" {
		return newValidationError("SSH.SoftwareVersion must not be empty")
	}
	if strings.ContainsAny(ssh.SoftwareVersion, " -\r\n") {
		log.WithField("software_version", ssh.SoftwareVersion).Error("invalid ssh configuration")
		return newValidationError("SSH.SoftwareVersion must not contain spaces, '-' or line breaks")
	}
	if strings.ContainsAny(ssh.Comments, "\r\n") {
		return newValidationError("SSH.Comments must not contain line breaks")
	}
	if ssh.MaxPreambleLines < 0 {
		return newValidationError("SSH.MaxPreambleLines must not be negative")
	}
	// RFC 4253 allows 255 bytes for the identification line itself.
	if ssh.MaxLineLength < 255 {
		log.WithField("max_line_length", ssh.MaxLineLength).Error("invalid ssh configuration")
		return newValidationError("SSH.MaxLineLength must be at least 255")
	}
	return nil
}

func validateWire(wire WireConfig) error {
	if wire.ReadChunkSize < 1 {
		return newValidationError("Wire.ReadChunkSize must be at least 1")
	}
	// RFC 4253 section 6.1 requires support for 35000 byte packets.
	if wire.MaxPacketLength < 35000 || wire.MaxPacketLength > 16*1024*1024 {
		log.WithField("max_packet_length", wire.MaxPacketLength).Error("invalid wire configuration")
		return newValidationError("Wire.MaxPacketLength must be between 35000 and 16 MiB")
	}
	if wire.PaddingBlockSize < 8 || wire.PaddingBlockSize > 64 {
		log.WithField("padding_block_size", wire.PaddingBlockSize).Error("invalid wire configuration")
		return newValidationError("Wire.PaddingBlockSize must be between 8 and 64")
	}
	if wire.MaxExtraPaddingBlocks < 0 {
		return newValidationError("Wire.MaxExtraPaddingBlocks must not be negative")
	}
	if wire.MAC != "none" {
		log.WithField("mac", wire.MAC).Error("invalid wire configuration")
		return newValidationError("Wire.MAC must be \"none\"")
	}
	return nil
}

func validateNetwork(network NetworkConfig) error {
	if network.DialTimeout < 0 {
		return newValidationError("Network.DialTimeout must not be negative")
	}
	if network.IOTimeout < 0 {
		return newValidationError("Network.IOTimeout must not be negative")
	}
	return nil
}

type validationError struct {
	message string
}

func newValidationError(message string) error {
	return &validationError{message: message}
}

func (e *validationError) Error() string {
	return "configuration validation failed: " + e.message
}
