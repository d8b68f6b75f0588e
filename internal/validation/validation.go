package validation

import (
	"strings"

	"github.com/google/uuid"

	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/apperrors"
)

// ValidateUUID checks that s is a well-formed UUID.
func ValidateUUID(s string) error {
	if strings.TrimSpace(s) == "" {
		return apperrors.ErrEmptyID
	}
	if _, err := uuid.Parse(s); err != nil {
		return apperrors.ErrInvalidUUID
	}
	return nil
}

// maxTokenLength bounds stored marketplace tokens; real tokens are well
// under this.
const maxTokenLength = 512

// ValidateMarketplaceToken checks the token submitted to the settings
// endpoint. Marketplace API tokens are opaque strings; only emptiness and an
// upper bound are enforced.
func ValidateMarketplaceToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return apperrors.ErrMissingRequiredField
	}
	if len(token) > maxTokenLength {
		return apperrors.ErrValueTooLong
	}
	return nil
}
