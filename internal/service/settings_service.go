package service

import (
	"fmt"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/apperrors"
	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/model"
	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/repository"
)

// SettingKeyMarketplaceToken is the setting row holding the marketplace
// scraping API token, stored fernet-encrypted.
const SettingKeyMarketplaceToken = "marketplace_api_token"

// SettingsService stores and retrieves configuration settings, encrypting
// secret values with the configured fernet key.
type SettingsService struct {
	settingRepo *repository.SettingRepository
	key         *fernet.Key
}

// NewSettingsService creates a new SettingsService. fernetKey may be empty,
// in which case operations on encrypted settings fail with
// ErrEncryptionUnavailable.
func NewSettingsService(settingRepo *repository.SettingRepository, fernetKey string) (*SettingsService, error) {
	svc := &SettingsService{settingRepo: settingRepo}
	if fernetKey != "" {
		key, err := fernet.DecodeKey(fernetKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decode fernet key: %w", err)
		}
		svc.key = key
	}
	return svc, nil
}

// SetMarketplaceToken encrypts and stores the marketplace API token.
func (s *SettingsService) SetMarketplaceToken(token string) error {
	if s.key == nil {
		return apperrors.ErrEncryptionUnavailable
	}
	encrypted, err := fernet.EncryptAndSign([]byte(token), s.key)
	if err != nil {
		return fmt.Errorf("failed to encrypt marketplace token: %w", err)
	}
	return s.settingRepo.UpsertSetting(model.Setting{
		Key:         SettingKeyMarketplaceToken,
		Value:       string(encrypted),
		IsEncrypted: true,
		UpdatedAt:   time.Now().UTC(),
	})
}

// MarketplaceToken decrypts and returns the stored token, for the ingestion
// jobs that talk to the marketplace APIs.
func (s *SettingsService) MarketplaceToken() (string, error) {
	if s.key == nil {
		return "", apperrors.ErrEncryptionUnavailable
	}
	setting, err := s.settingRepo.GetSetting(SettingKeyMarketplaceToken)
	if err != nil {
		return "", err
	}
	decrypted := fernet.VerifyAndDecrypt([]byte(setting.Value), 0, []*fernet.Key{s.key})
	if decrypted == nil {
		return "", fmt.Errorf("failed to decrypt marketplace token")
	}
	return string(decrypted), nil
}

// MarketplaceTokenStatus reports whether a token is configured, without
// exposing the token itself.
func (s *SettingsService) MarketplaceTokenStatus() (model.MarketplaceTokenResponse, error) {
	setting, err := s.settingRepo.GetSetting(SettingKeyMarketplaceToken)
	if err == apperrors.ErrSettingNotFound {
		return model.MarketplaceTokenResponse{Configured: false}, nil
	}
	if err != nil {
		return model.MarketplaceTokenResponse{}, err
	}
	updatedAt := setting.UpdatedAt
	return model.MarketplaceTokenResponse{Configured: true, UpdatedAt: &updatedAt}, nil
}
