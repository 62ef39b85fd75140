package auth

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"aidanwoods.dev/go-paseto"

	"translationgate/internal/domain"
)

const (
	tokenIssuer     = "host-cms"
	adminAudience   = "translationgate-admin"
	nonceAudience   = "translationgate-options-form"
	keyBytesSize    = 32
	defaultNonceTTL = 12 * time.Hour
)

// AdminClaims are the claims of a host-issued admin token.
type AdminClaims struct {
	Subject      string    `json:"sub"`
	Capabilities []string  `json:"capabilities"`
	Expiration   time.Time `json:"exp"`
}

func (c AdminClaims) Can(capability string) bool {
	return slices.Contains(c.Capabilities, capability)
}

// TokenService verifies admin tokens and issues options-form nonces, both
// PASETO v4.local with the shared host key.
type TokenService struct {
	key      paseto.V4SymmetricKey
	nonceTTL time.Duration
	now      func() time.Time
}

func NewTokenService(keyHex string) (*TokenService, error) {
	keyBytes, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid hex string for PASETO key: %w", err)
	}
	if len(keyBytes) != keyBytesSize {
		return nil, fmt.Errorf("decoded key must be exactly %d bytes, got %d", keyBytesSize, len(keyBytes))
	}
	key, err := paseto.V4SymmetricKeyFromBytes(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to create PASETO symmetric key: %w", err)
	}
	return &TokenService{key: key, nonceTTL: defaultNonceTTL, now: time.Now}, nil
}

// IssueAdminToken is what the host does when an administrator opens the page.
// cmd/admintoken uses it for manual access.
func (s *TokenService) IssueAdminToken(subject string, capabilities []string, ttl time.Duration) string {
	now := s.now()
	token := paseto.NewToken()
	token.SetIssuer(tokenIssuer)
	token.SetAudience(adminAudience)
	token.SetSubject(subject)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(ttl))
	//nolint:errcheck // Set only fails on unmarshalable values
	_ = token.Set("capabilities", capabilities)
	return token.V4Encrypt(s.key, nil)
}

// VerifyAdminToken returns domain.ErrMissingCapability for any invalid token.
func (s *TokenService) VerifyAdminToken(raw string) (*AdminClaims, error) {
	token, err := s.parser(adminAudience).ParseV4Local(s.key, raw, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMissingCapability, err)
	}
	var claims AdminClaims
	if err := json.Unmarshal(token.ClaimsJSON(), &claims); err != nil {
		return nil, fmt.Errorf("%w: parse claims: %w", domain.ErrMissingCapability, err)
	}
	return &claims, nil
}

// IssueNonce binds a form nonce to the admin subject.
func (s *TokenService) IssueNonce(subject string) string {
	now := s.now()
	token := paseto.NewToken()
	token.SetIssuer(tokenIssuer)
	token.SetAudience(nonceAudience)
	token.SetSubject(subject)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(s.nonceTTL))
	return token.V4Encrypt(s.key, nil)
}

func (s *TokenService) VerifyNonce(raw, subject string) error {
	parser := s.parser(nonceAudience)
	parser.AddRule(paseto.Subject(subject))
	if _, err := parser.ParseV4Local(s.key, raw, nil); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidNonce, err)
	}
	return nil
}

func (s *TokenService) parser(audience string) paseto.Parser {
	parser := paseto.NewParserWithoutExpiryCheck()
	parser.AddRule(paseto.ForAudience(audience))
	parser.AddRule(paseto.IssuedBy(tokenIssuer))
	parser.AddRule(paseto.ValidAt(s.now()))
	return parser
}
