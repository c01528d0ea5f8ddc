package api

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/verdantworks/growline/internal/platform/errors"
)

// grantEnv holds raw env values before post-parse validation.
type grantEnv struct {
	Issuer    string `env:"GROWLINE_SUBMISSION_GRANT_ISSUER"`
	Audience  string `env:"GROWLINE_SUBMISSION_GRANT_AUDIENCE"`
	PublicKey string `env:"GROWLINE_SUBMISSION_GRANT_PUBLIC_KEY"`
}

// SubmissionGrantConfig defines how leaderboard submission grants are
// verified. The zero value disables verification.
type SubmissionGrantConfig struct {
	Issuer   string
	Audience string
	Key      ed25519.PublicKey
	Now      func() time.Time
}

// Enabled reports whether grant verification is configured.
func (c SubmissionGrantConfig) Enabled() bool {
	return c.Issuer != "" || c.Audience != "" || len(c.Key) > 0
}

// SubmissionGrantExpectation defines the identity a grant must match.
type SubmissionGrantExpectation struct {
	ProfileID string
	BoardID   string
}

// SubmissionGrantClaims captures validated submission grant claims.
type SubmissionGrantClaims struct {
	Issuer    string
	Audience  []string
	ExpiresAt time.Time
	IssuedAt  time.Time
	JWTID     string
	ProfileID string
	BoardID   string
}

// submissionGrantClaims is the internal claims type used for JWT parsing.
type submissionGrantClaims struct {
	jwt.RegisteredClaims
	ProfileID string `json:"profile_id"`
	BoardID   string `json:"board_id"`
}

// LoadSubmissionGrantConfigFromEnv reads grant verification configuration.
// All three variables must be set together; none set means verification is
// disabled.
func LoadSubmissionGrantConfigFromEnv(now func() time.Time) (SubmissionGrantConfig, error) {
	var raw grantEnv
	if err := env.Parse(&raw); err != nil {
		return SubmissionGrantConfig{}, fmt.Errorf("parse submission grant env: %w", err)
	}
	issuer := strings.TrimSpace(raw.Issuer)
	audience := strings.TrimSpace(raw.Audience)
	publicKey := strings.TrimSpace(raw.PublicKey)
	if issuer == "" && audience == "" && publicKey == "" {
		return SubmissionGrantConfig{}, nil
	}
	if issuer == "" {
		return SubmissionGrantConfig{}, errors.New("GROWLINE_SUBMISSION_GRANT_ISSUER is required")
	}
	if audience == "" {
		return SubmissionGrantConfig{}, errors.New("GROWLINE_SUBMISSION_GRANT_AUDIENCE is required")
	}
	if publicKey == "" {
		return SubmissionGrantConfig{}, errors.New("GROWLINE_SUBMISSION_GRANT_PUBLIC_KEY is required")
	}
	keyBytes, err := decodeBase64(publicKey)
	if err != nil {
		return SubmissionGrantConfig{}, fmt.Errorf("decode submission grant public key: %w", err)
	}
	if len(keyBytes) != ed25519.PublicKeySize {
		return SubmissionGrantConfig{}, fmt.Errorf("submission grant public key must be %d bytes", ed25519.PublicKeySize)
	}
	if now == nil {
		now = time.Now
	}
	return SubmissionGrantConfig{
		Issuer:   issuer,
		Audience: audience,
		Key:      ed25519.PublicKey(keyBytes),
		Now:      now,
	}, nil
}

// ValidateSubmissionGrant verifies a grant token and checks it was minted
// for the submitting profile and board.
func ValidateSubmissionGrant(grant string, expected SubmissionGrantExpectation, cfg SubmissionGrantConfig) (SubmissionGrantClaims, error) {
	grant = strings.TrimSpace(grant)
	if grant == "" {
		return SubmissionGrantClaims{}, apperrors.New(apperrors.CodeLeaderboardGrantInvalid, "submission grant is required")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Issuer == "" || cfg.Audience == "" || len(cfg.Key) != ed25519.PublicKeySize {
		return SubmissionGrantClaims{}, errors.New("submission grant verifier is not configured")
	}

	var parsed submissionGrantClaims
	_, err := jwt.ParseWithClaims(grant, &parsed, func(token *jwt.Token) (any, error) {
		return cfg.Key, nil
	},
		jwt.WithValidMethods([]string{"EdDSA"}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return SubmissionGrantClaims{}, mapJWTError(err)
	}

	if parsed.Issuer == "" || parsed.Issuer != cfg.Issuer {
		return SubmissionGrantClaims{}, apperrors.WithMetadata(
			apperrors.CodeLeaderboardGrantMismatch,
			"submission grant issuer mismatch",
			map[string]string{"field": "issuer"},
		)
	}
	if !audienceContains(parsed.Audience, cfg.Audience) {
		return SubmissionGrantClaims{}, apperrors.WithMetadata(
			apperrors.CodeLeaderboardGrantMismatch,
			"submission grant audience mismatch",
			map[string]string{"field": "audience"},
		)
	}

	if parsed.ID == "" {
		return SubmissionGrantClaims{}, apperrors.New(apperrors.CodeLeaderboardGrantInvalid, "submission grant jti is required")
	}
	if parsed.ExpiresAt == nil {
		return SubmissionGrantClaims{}, apperrors.New(apperrors.CodeLeaderboardGrantInvalid, "submission grant exp is required")
	}

	now := cfg.Now().UTC()
	exp := parsed.ExpiresAt.Time.UTC()
	if !exp.After(now) {
		return SubmissionGrantClaims{}, apperrors.New(apperrors.CodeLeaderboardGrantExpired, "submission grant is expired")
	}
	if parsed.NotBefore != nil && now.Before(parsed.NotBefore.Time.UTC()) {
		return SubmissionGrantClaims{}, apperrors.New(apperrors.CodeLeaderboardGrantInvalid, "submission grant not active yet")
	}

	if strings.TrimSpace(parsed.ProfileID) == "" || parsed.ProfileID != expected.ProfileID {
		return SubmissionGrantClaims{}, apperrors.WithMetadata(
			apperrors.CodeLeaderboardGrantMismatch,
			"submission grant profile mismatch",
			map[string]string{"field": "profile_id"},
		)
	}
	if strings.TrimSpace(parsed.BoardID) == "" || parsed.BoardID != expected.BoardID {
		return SubmissionGrantClaims{}, apperrors.WithMetadata(
			apperrors.CodeLeaderboardGrantMismatch,
			"submission grant board mismatch",
			map[string]string{"field": "board_id"},
		)
	}

	claims := SubmissionGrantClaims{
		Issuer:    parsed.Issuer,
		Audience:  []string(parsed.Audience),
		ExpiresAt: exp,
		JWTID:     parsed.ID,
		ProfileID: parsed.ProfileID,
		BoardID:   parsed.BoardID,
	}
	if parsed.IssuedAt != nil {
		claims.IssuedAt = parsed.IssuedAt.Time.UTC()
	}
	return claims, nil
}

// MintSubmissionGrant signs a grant for one profile and board. Used by the
// admin CLI and tests; game servers normally mint grants out of band.
func MintSubmissionGrant(key ed25519.PrivateKey, cfg SubmissionGrantConfig, expected SubmissionGrantExpectation, jwtID string, ttl time.Duration) (string, error) {
	if len(key) != ed25519.PrivateKeySize {
		return "", fmt.Errorf("submission grant private key must be %d bytes", ed25519.PrivateKeySize)
	}
	if jwtID == "" {
		return "", errors.New("submission grant jti is required")
	}
	now := time.Now
	if cfg.Now != nil {
		now = cfg.Now
	}
	issued := now().UTC()
	claims := submissionGrantClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Audience:  jwt.ClaimStrings{cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(ttl)),
			ID:        jwtID,
		},
		ProfileID: expected.ProfileID,
		BoardID:   expected.BoardID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	return token.SignedString(key)
}

// mapJWTError translates jwt library errors to application errors.
func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, jwt.ErrEd25519Verification) {
		return apperrors.New(apperrors.CodeLeaderboardGrantInvalid, "submission grant signature is invalid")
	}
	if errors.Is(err, jwt.ErrTokenUnverifiable) {
		return apperrors.New(apperrors.CodeLeaderboardGrantInvalid, "submission grant alg is invalid")
	}
	return apperrors.New(apperrors.CodeLeaderboardGrantInvalid, "submission grant is invalid")
}

// audienceContains reports whether the audience list contains the value.
func audienceContains(aud jwt.ClaimStrings, value string) bool {
	for _, item := range aud {
		if item == value {
			return true
		}
	}
	return false
}

func decodeBase64(value string) ([]byte, error) {
	if value == "" {
		return nil, errors.New("empty base64 value")
	}
	decoded, err := base64.RawStdEncoding.DecodeString(value)
	if err == nil {
		return decoded, nil
	}
	return base64.StdEncoding.DecodeString(value)
}
