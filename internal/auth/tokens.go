package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/schoolhub/schoolhub/internal/shared"
)

// Token kinds embedded in the claims so a long token cannot stand in for a
// short one.
const (
	kindShort = "short"
	kindLong  = "long"
)

// Claims is the signed token payload.
type Claims struct {
	UserID   string `json:"userId"`
	UserKey  string `json:"userKey"`
	Role     string `json:"role"`
	SchoolID string `json:"schoolId,omitempty"`
	Kind     string `json:"kind"`
	jwt.RegisteredClaims
}

// Manager issues and verifies session tokens. Verification is synchronous and
// side-effect free: the embedded claim is trusted as of issuance time.
type Manager struct {
	secret   []byte
	issuer   string
	shortTTL time.Duration
	longTTL  time.Duration
}

// NewManager constructs a token Manager.
func NewManager(secret, issuer string, shortTTL, longTTL time.Duration) *Manager {
	return &Manager{secret: []byte(secret), issuer: issuer, shortTTL: shortTTL, longTTL: longTTL}
}

// IssueShortToken signs a short-lived token presented on every request.
func (m *Manager) IssueShortToken(p *shared.Principal) (string, error) {
	return m.issue(p, kindShort, m.shortTTL)
}

// IssueLongToken signs the long-lived token handed out once at
// registration/login for client-side persistent storage.
func (m *Manager) IssueLongToken(p *shared.Principal) (string, error) {
	return m.issue(p, kindLong, m.longTTL)
}

func (m *Manager) issue(p *shared.Principal, kind string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID:   p.UserID,
		UserKey:  p.UserID,
		Role:     string(p.Role),
		SchoolID: p.SchoolID,
		Kind:     kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// VerifyShortToken decodes a short token into a principal. Malformed,
// expired and badly signed tokens all fail the same way.
func (m *Manager) VerifyShortToken(token string) (*shared.Principal, error) {
	return m.verify(token, kindShort)
}

// VerifyLongToken decodes a long token into a principal.
func (m *Manager) VerifyLongToken(token string) (*shared.Principal, error) {
	return m.verify(token, kindLong)
}

func (m *Manager) verify(token, kind string) (*shared.Principal, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Kind != kind {
		return nil, shared.ErrUnauthorized
	}
	role := shared.Role(claims.Role)
	if !role.Valid() {
		return nil, shared.ErrUnauthorized
	}
	return &shared.Principal{UserID: claims.UserID, Role: role, SchoolID: claims.SchoolID}, nil
}
