// Package tlsconfig builds TLS configuration for the gRPC server and client.
package tlsconfig

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
)

type Config struct {
	CertPath   string
	KeyPath    string
	CACertPath string
	ServerName string
	Server     bool
}

// SetupTLS returns a TLS 1.3 configuration.
//
// A server must present CertPath/KeyPath and, when CACertPath is set,
// requires and verifies client certificates against it. A client verifies
// the server against CACertPath (or the system roots) and presents
// CertPath/KeyPath when they are set.
func SetupTLS(config *Config) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS13,
		InsecureSkipVerify: false,
		ServerName:         config.ServerName,
	}

	if config.CertPath != "" || config.KeyPath != "" {
		cert, err := tls.LoadX509KeyPair(config.CertPath, config.KeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load certificate: %w", err)
		}

		tlsConfig.Certificates = []tls.Certificate{cert}
	} else if config.Server {
		return nil, errors.New("server certificate and key are required")
	}

	if config.CACertPath == "" {
		return tlsConfig, nil
	}

	caCert, err := os.ReadFile(config.CACertPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA certificate: %w", err)
	}

	caCertPool := x509.NewCertPool()
	if !caCertPool.AppendCertsFromPEM(caCert) {
		return nil, errors.New("failed to parse CA certificate")
	}

	if config.Server {
		tlsConfig.ClientAuth = tls.RequireAndVerifyClientCert
		tlsConfig.ClientCAs = caCertPool
	} else {
		tlsConfig.RootCAs = caCertPool
	}

	return tlsConfig, nil
}
