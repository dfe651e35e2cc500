// работа с TLS сертификатами для сервера, который сам терминирует HTTPS
package config

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"log/slog"
	"os"
	"time"
)

// CreateTLSConfig собирает tls.Config из файлов сертификата; nil если TLS выключен
func (c *ServerConfig) CreateTLSConfig() (*tls.Config, error) {
	if !c.EnableTLS {
		return nil, nil
	}
	if err := c.ValidateTLS(); err != nil {
		return nil, err
	}

	cert, err := tls.LoadX509KeyPair(c.TLSCertFile, c.TLSKeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
	}

	// истекающий сертификат не блокирует запуск, только предупреждение
	if err := CheckCertificateValidity(c.TLSCertFile, time.Now()); err != nil {
		slog.Warn("tls certificate check", "error", err)
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
		CurvePreferences: []tls.CurveID{
			tls.X25519,
			tls.CurveP256,
		},
	}, nil
}

// CheckCertificateValidity проверяет срок действия PEM сертификата на момент now
func CheckCertificateValidity(certFile string, now time.Time) error {
	data, err := os.ReadFile(certFile)
	if err != nil {
		return fmt.Errorf("failed to read certificate file: %w", err)
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return fmt.Errorf("failed to decode PEM block from certificate")
	}

	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return fmt.Errorf("failed to parse certificate: %w", err)
	}

	switch {
	case now.Before(cert.NotBefore):
		return fmt.Errorf("certificate is not yet valid (valid from: %s)", cert.NotBefore.Format(time.RFC3339))
	case now.After(cert.NotAfter):
		return fmt.Errorf("certificate has expired (expired at: %s)", cert.NotAfter.Format(time.RFC3339))
	case cert.NotAfter.Sub(now) < 30*24*time.Hour:
		return fmt.Errorf("certificate expires soon (in %d days)", int(cert.NotAfter.Sub(now).Hours()/24))
	}

	return nil
}
