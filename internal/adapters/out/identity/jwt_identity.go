// Package identity resolves caller credentials into authenticated actors.
// The state machine trusts the resolved (actor id, role) pair fully and
// never re-authenticates.
package identity

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/golang-jwt/jwt/v4"
)

var (
	// ErrInvalidCredential is returned for tokens that fail signature or
	// claim validation. Deliberately unspecific.
	ErrInvalidCredential = errors.New("invalid credential")
)

// actorClaims are the registered claims plus the acting role.
type actorClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// JWTIdentityProvider authenticates HMAC-signed bearer tokens carrying the
// actor id in the subject claim and the role in a custom claim.
type JWTIdentityProvider struct {
	secret []byte
}

// NewJWTIdentityProvider creates a provider verifying tokens with the given
// shared secret.
func NewJWTIdentityProvider(secret string) *JWTIdentityProvider {
	return &JWTIdentityProvider{secret: []byte(secret)}
}

// Authenticate parses and verifies the token, returning the actor id and role.
func (p *JWTIdentityProvider) Authenticate(credential string) (kernel.UUID, order.ActorRole, error) {
	claims := &actorClaims{}
	token, err := jwt.ParseWithClaims(credential, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return kernel.UUID{}, order.RoleUnknown, ErrInvalidCredential
	}

	role, err := order.RoleFromString(claims.Role)
	if err != nil {
		return kernel.UUID{}, order.RoleUnknown, ErrInvalidCredential
	}

	// System callers authenticate with a role-only token; everyone else
	// must carry their id in the subject claim.
	if claims.Subject == "" {
		if role == order.RoleSystem {
			return kernel.UUID{}, role, nil
		}
		return kernel.UUID{}, order.RoleUnknown, ErrInvalidCredential
	}

	actorID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return kernel.UUID{}, order.RoleUnknown, ErrInvalidCredential
	}

	return actorID, role, nil
}

// IssueToken signs a token for the given actor. Used by tests and tooling;
// production tokens come from the auth collaborator.
func (p *JWTIdentityProvider) IssueToken(actorID kernel.UUID, role order.ActorRole) (string, error) {
	claims := actorClaims{Role: role.String()}
	if actorID.Validate() == nil {
		claims.Subject = actorID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}
