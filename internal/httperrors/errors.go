// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors provides user-friendly error handling for HTTP requests.
// Describe turns a transport failure into a one-line explanation suitable for
// an error payload; Present renders fuller troubleshooting advice for the CLI.
package httperrors

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
)

// Class is the detected category of a network failure.
type Class int

const (
	ClassGeneric Class = iota
	ClassTimeout
	ClassDNS
	ClassRefused
	ClassTLS
	ClassServer
)

// Classify detects the failure category of err.
func Classify(err error) Class {
	switch {
	case err == nil:
		return ClassGeneric
	case isTimeoutError(err):
		return ClassTimeout
	case isDNSError(err):
		return ClassDNS
	case isConnectionRefusedError(err):
		return ClassRefused
	case isSSLError(err):
		return ClassTLS
	case isServerError(err.Error()):
		return ClassServer
	}
	return ClassGeneric
}

// Describe returns a short, human-friendly summary of a network failure.
func Describe(err error) string {
	host := hostOf(err)
	switch Classify(err) {
	case ClassTimeout:
		return fmt.Sprintf("connection to %s timed out", host)
	case ClassDNS:
		return fmt.Sprintf("cannot resolve %s", host)
	case ClassRefused:
		return fmt.Sprintf("connection to %s refused", host)
	case ClassTLS:
		return fmt.Sprintf("secure connection to %s failed", host)
	case ClassServer:
		return fmt.Sprintf("%s returned a server error", host)
	}
	return fmt.Sprintf("cannot reach %s", host)
}

// Present writes troubleshooting advice for err to w (normally stderr).
// context describes what the CLI was doing, e.g. "checking executor health".
func Present(w io.Writer, err error, context string) {
	if err == nil {
		return
	}
	p := pterm.DefaultBasicText.WithWriter(w)
	errStr := err.Error()

	switch Classify(err) {
	case ClassTimeout:
		p.Printfln("⏱️  Connection timeout while %s", context)
		p.Println()
		p.Println("The executor took too long to respond. This could mean:")
		p.Println("  • Slow internet connection")
		p.Println("  • Executor is under heavy load")
		p.Println("  • Network firewall is blocking the connection")
	case ClassDNS:
		p.Printfln("🌐 Cannot resolve server address while %s", context)
		p.Println()
		p.Printfln("Unable to look up %s. Please check:", hostOf(err))
		p.Println("  • Your internet connection is working")
		p.Println("  • DNS settings are correct")
		p.Println("  • The --api-url value is spelled correctly")
	case ClassRefused:
		p.Printfln("🚫 Connection refused while %s", context)
		p.Println()
		p.Println("The executor is not accepting connections. This could mean:")
		p.Println("  • The service is temporarily down")
		p.Println("  • Wrong server address or port")
	case ClassTLS:
		p.Printfln("🔒 Secure connection failed while %s", context)
		p.Println()
		p.Println("Cannot establish a secure HTTPS connection. Try:")
		p.Println("  • Check your system date and time")
		p.Println("  • Verify network proxy settings")
	case ClassServer:
		p.Printfln("⚠️  Server error while %s", context)
		p.Println()
		p.Println("The executor encountered an internal error. Please try again in a few minutes.")
	default:
		p.Printfln("❌ Cannot connect to the executor while %s", context)
		p.Println()
		p.Println("Please check:")
		p.Println("  • Your internet connection")
		p.Println("  • Firewall settings that might block HTTPS requests")
		if errStr != "" {
			shortErr := errStr
			if len(shortErr) > 100 {
				shortErr = shortErr[:100] + "..."
			}
			p.Println()
			p.Printfln("Technical details: %s", shortErr)
		}
	}
	p.Println()
}

// isTimeoutError checks if the error is a timeout error.
func isTimeoutError(err error) bool {
	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// isDNSError checks if the error is a DNS resolution error.
func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// isConnectionRefusedError checks if the error is a connection refused error.
func isConnectionRefusedError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

// isSSLError checks if the error is an SSL/TLS error.
func isSSLError(err error) bool {
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "ssl") ||
		strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "handshake")
}

// isServerError checks if the error indicates a server-side problem (5xx errors).
func isServerError(errStr string) bool {
	lower := strings.ToLower(errStr)
	for _, s := range []string{"500", "502", "503", "504", "internal server error", "bad gateway", "service unavailable", "gateway timeout"} {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// hostOf finds the host from a *url.Error in err's chain.
func hostOf(err error) string {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return ExtractHostFromURL(uerr.URL)
	}
	return "executor"
}

// ExtractHostFromURL extracts the hostname from a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "executor"
	}
	return u.Host
}
