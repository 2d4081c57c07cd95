package services

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

type identityClaims struct {
	jwt.RegisteredClaims
	PreferredUsername string   `json:"preferred_username"`
	Roles             []string `json:"roles"`
	RealmAccess       struct {
		Roles []string `json:"roles"`
	} `json:"realm_access"`
}

type authServiceImpl struct {
	logger  zerolog.Logger
	parser  *jwt.Parser
	keyFunc jwt.Keyfunc
}

// NewAuthService verifies RS256 tokens when publicKeyPEM is set and
// HS256 tokens signed with signingKey otherwise. Empty issuer or
// audience disables the corresponding check.
func NewAuthService(
	logger zerolog.Logger,
	issuer string,
	audience string,
	signingKey []byte,
	publicKeyPEM []byte,
) (AuthService, error) {
	opts := []jwt.ParserOption{
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}

	var keyFunc jwt.Keyfunc
	switch {
	case len(publicKeyPEM) > 0:
		publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyPEM)
		if err != nil {
			return nil, fmt.Errorf("failed to parse public key: %w", err)
		}
		opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
		keyFunc = func(*jwt.Token) (any, error) { return publicKey, nil }
	case len(signingKey) > 0:
		opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		keyFunc = func(*jwt.Token) (any, error) { return signingKey, nil }
	default:
		return nil, errors.New("either a signing key or a public key is required")
	}

	return &authServiceImpl{
		logger:  logger,
		parser:  jwt.NewParser(opts...),
		keyFunc: keyFunc,
	}, nil
}

func (s *authServiceImpl) ParseIdentity(token string) (*Identity, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrUnauthenticated)
	}

	claims := &identityClaims{}
	_, err := s.parser.ParseWithClaims(token, claims, s.keyFunc)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token is expired: %w", ErrUnauthenticated, err)
		}
		return nil, fmt.Errorf("%w: failed to parse token: %w", ErrUnauthenticated, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", ErrUnauthenticated)
	}

	roles := make([]string, 0, len(claims.Roles)+len(claims.RealmAccess.Roles))
	roles = append(roles, claims.RealmAccess.Roles...)
	roles = append(roles, claims.Roles...)

	s.logger.Debug().
		Str("subject", claims.Subject).
		Strs("roles", roles).
		Msg("parsed identity")
	return &Identity{
		Subject:  claims.Subject,
		Username: claims.PreferredUsername,
		Roles:    roles,
	}, nil
}
