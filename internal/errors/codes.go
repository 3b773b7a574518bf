// Package errors provides structured error handling for the catalog domain.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Catalog load errors
	CodeCatalogFormatInvalid            Code = "CATALOG_FORMAT_INVALID"
	CodeCatalogIdentifierColumnsMissing Code = "CATALOG_IDENTIFIER_COLUMNS_MISSING"

	// Filter conditions. Column-not-found and empty-result are surfaced as
	// notices, never as fatal errors.
	CodeCatalogColumnNotFound Code = "CATALOG_COLUMN_NOT_FOUND"
	CodeCatalogEmptyResult    Code = "CATALOG_EMPTY_RESULT"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)
