package identitysvc

import (
	"context"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/session"
)

// Claims is the access-token payload contract with the identity backend.
// `user_metadata` carries the authorization flags; absent keys read as false.
type Claims struct {
	jwt.StandardClaims
	Email        string               `json:"email,omitempty"`
	UserMetadata session.UserMetadata `json:"user_metadata"`
}

// JWTBackend establishes sessions by verifying the access token locally:
// HS256 signature with the shared secret, standard expiry checks. The
// refresh token is opaque and only checked for presence.
type JWTBackend struct {
	secret []byte
}

var _ session.Backend = (*JWTBackend)(nil)

func NewJWTBackend(conf *core.Config) *JWTBackend {
	return &JWTBackend{secret: []byte(conf.SecretKey)}
}

func (b *JWTBackend) Establish(ctx context.Context, accessToken, refreshToken string) (session.User, error) {
	if refreshToken == "" {
		return session.User{}, errors.New("missing refresh token")
	}

	claims := new(Claims)
	token, err := jwt.ParseWithClaims(accessToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return b.secret, nil
	})
	if err != nil {
		return session.User{}, errors.Wrap(err, "parsing access token")
	}
	if !token.Valid || claims.Subject == "" {
		return session.User{}, errors.New("invalid access token")
	}

	return session.User{
		ID:       claims.Subject,
		Email:    claims.Email,
		Metadata: claims.UserMetadata,
	}, nil
}
