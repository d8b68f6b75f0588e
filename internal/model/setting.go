package model

import "time"

// Setting is one key/value configuration row. Encrypted settings store a
// fernet token in Value and are decrypted by the settings service.
type Setting struct {
	Key         string    `json:"key"`
	Value       string    `json:"-"`
	IsEncrypted bool      `json:"isEncrypted"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MarketplaceTokenResponse reports whether a marketplace API token is
// configured without ever echoing the token itself.
type MarketplaceTokenResponse struct {
	Configured bool       `json:"configured"`
	UpdatedAt  *time.Time `json:"updatedAt"`
}
