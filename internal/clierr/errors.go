// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

// Package clierr provides error classification and user-friendly error
// formatting for the CLI. It helps distinguish between different error
// types and provides actionable hints.
package clierr

import (
	"errors"
	"fmt"
	"strings"

	apierrors "k8s.io/apimachinery/pkg/api/errors"

	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/tango"
)

// Common error types for CLI output.
const (
	TypeConnection = "connection" // Tango database or device unreachable
	TypeDevice     = "device"     // Device-level failure after connecting
	TypeForbidden  = "forbidden"  // RBAC access denied
	TypeNotFound   = "not_found"  // Resource not found
	TypeNetwork    = "network"    // Connection/network errors
	TypeInternal   = "internal"   // Internal/unexpected errors
	TypeValidation = "validation" // Input validation errors
)

// IsConnection checks if the error is a Tango connection failure.
func IsConnection(err error) bool {
	var cerr *tango.ConnectionError
	return errors.As(err, &cerr)
}

// IsForbidden checks if the error is an access denied (RBAC) error.
func IsForbidden(err error) bool {
	if err == nil {
		return false
	}
	if apierrors.IsForbidden(err) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "forbidden") ||
		strings.Contains(msg, "access denied") ||
		strings.Contains(msg, "unauthorized")
}

// IsNotFound checks if the error indicates a missing resource.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	if apierrors.IsNotFound(err) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") ||
		strings.Contains(msg, "the server could not find")
}

// IsNetworkError checks if the error is a connection/network error.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "network is unreachable") ||
		strings.Contains(msg, "dial tcp") ||
		strings.Contains(msg, "i/o timeout") ||
		strings.Contains(msg, "context deadline exceeded")
}

// ClassifyError determines the type of error for appropriate handling.
func ClassifyError(err error) string {
	if err == nil {
		return ""
	}
	if IsConnection(err) {
		var cerr *tango.ConnectionError
		errors.As(err, &cerr)
		if cerr.Device != "" {
			return TypeDevice
		}
		return TypeConnection
	}
	if IsForbidden(err) {
		return TypeForbidden
	}
	if IsNotFound(err) {
		return TypeNotFound
	}
	if IsNetworkError(err) {
		return TypeNetwork
	}
	return TypeInternal
}

// Pretty formats an error with a user-friendly message and actionable hints.
func Pretty(err error) string {
	if err == nil {
		return ""
	}

	errType := ClassifyError(err)
	baseMsg := err.Error()

	switch errType {
	case TypeConnection:
		return fmt.Sprintf("Tango connection error: %s\n\nHint: Check the Tango host:\n"+
			"  - Is the database server running and reachable?\n"+
			"  - In a cluster, verify the namespace with tangoktl ns", baseMsg)

	case TypeDevice:
		return fmt.Sprintf("Device error: %s\n\nHint: The database answered but the device did not.\n"+
			"  - Check that the device server is exported and running\n"+
			"  - tangoctl info -l shows which devices are exported", baseMsg)

	case TypeForbidden:
		return fmt.Sprintf("Access denied: %s\n\nHint: Check your RBAC permissions. You may need:\n"+
			"  - ClusterRole with get/list permissions for the resources you're accessing\n"+
			"  - kubectl auth can-i list <resource> to verify permissions", baseMsg)

	case TypeNotFound:
		return fmt.Sprintf("Not found: %s", baseMsg)

	case TypeNetwork:
		return fmt.Sprintf("Connection error: %s\n\nHint: Check your cluster connectivity:\n"+
			"  - kubectl cluster-info to verify connection\n"+
			"  - Ensure your kubeconfig is correct", baseMsg)

	default:
		return fmt.Sprintf("Error: %s", baseMsg)
	}
}

// WrapWithHint wraps an error with an additional hint message.
func WrapWithHint(err error, hint string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w\n\nHint: %s", err, hint)
}

// NothingFound returns a user-friendly message when a scan returns no results.
// This is different from an error - it's a valid "empty" result.
func NothingFound(resource string) string {
	return fmt.Sprintf("No %s found matching your criteria.\n\n"+
		"This might mean:\n"+
		"  - No devices of this type are exported in the database\n"+
		"  - Your filter is too restrictive\n"+
		"  - Ignored device classes are excluded unless -e is given", resource)
}
