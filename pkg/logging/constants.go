// Package logging provides standardized logging utilities for tusup.
// This file defines constants used throughout the logging package.
package logging

// Standard field names for logging
const (
	// Common field names
	FieldOperation = "operation"   // Higher-level operation
	FieldComponent = "component"   // Component or module
	FieldDuration  = "duration_ms" // Duration of operation in milliseconds
	FieldError     = "error"       // Error message
	FieldPath      = "path"        // File path of the upload source
	FieldUploadID  = "upload_id"   // Upload record identifier
	FieldStatus    = "status"      // Upload state

	// Additional field names for structured logging
	FieldOffset      = "offset"       // Offset in bytes
	FieldSize        = "size"         // Total file size in bytes
	FieldRetries     = "retries"      // Number of retries
	FieldStatusCode  = "status_code"  // HTTP status code
	FieldContentType = "content_type" // Content type
	FieldURL         = "url"          // Endpoint URL
)
