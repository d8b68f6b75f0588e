package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrProductNotFound indicates that a product with the given ID does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrObservationNotFound indicates that a price observation does not exist.
	ErrObservationNotFound = errors.New("price observation not found")

	// ErrSnapshotNotFound indicates no index snapshot exists for the given date.
	ErrSnapshotNotFound = errors.New("index snapshot not found")

	// ErrSettingNotFound indicates that a setting with the given key does not exist.
	ErrSettingNotFound = errors.New("setting not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrNegativePrice indicates that a price field has an invalid negative value.
	ErrNegativePrice = errors.New("price cannot be negative")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrEncryptionUnavailable indicates that no fernet key is configured,
	// so encrypted settings cannot be stored or read.
	ErrEncryptionUnavailable = errors.New("secret encryption is not configured")

	// ErrMissingRequiredField indicates that a required field is missing or empty.
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrValueTooLong indicates that a submitted value exceeds its size limit.
	ErrValueTooLong = errors.New("value exceeds maximum length")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data, as opposed to missing entities or validation issues.
var (
	ErrFailedToRetrieveProducts     = errors.New("failed to retrieve products")
	ErrFailedToRetrieveProduct      = errors.New("failed to retrieve product")
	ErrFailedToRetrievePrices       = errors.New("failed to retrieve price history")
	ErrFailedToComputeMetrics       = errors.New("failed to compute finance metrics")
	ErrFailedToBuildIndex           = errors.New("failed to build market index")
	ErrFailedToRetrieveSnapshots    = errors.New("failed to retrieve index snapshots")
	ErrFailedToBuildSeriesSummaries = errors.New("failed to build series summaries")
	ErrFailedToRetrieveSetting      = errors.New("failed to retrieve setting")
	ErrFailedToStoreSetting         = errors.New("failed to store setting")
)
