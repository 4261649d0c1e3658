package account

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

// Issuer mints the token pair handed back to the gateway at the end of a
// sign-in redirect. Access tokens are HS256 JWTs carrying the account's
// authorization flags as `user_metadata` claims; refresh tokens are opaque.
type Issuer struct {
	appName    string
	secret     []byte
	expiration time.Duration
}

func NewIssuer(conf *core.Config) *Issuer {
	return &Issuer{
		appName:    conf.AppName,
		secret:     []byte(conf.SecretKey),
		expiration: conf.Auth.AccessTokenExpiration,
	}
}

// IssueTokens returns a signed access token and a fresh refresh token for acct.
func (iss *Issuer) IssueTokens(acct Account) (accessToken, refreshToken string, err error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": iss.appName,
		"sub": acct.ID,
		"iat": now.Unix(),
		"exp": now.Add(iss.expiration).Unix(),

		"email": acct.Email,
		"user_metadata": map[string]bool{
			"isAdmin": acct.IsAdmin,
			"isPaid":  acct.IsPaid,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessToken, err = token.SignedString(iss.secret)
	if err != nil {
		return "", "", errors.Wrap(err, "signing access token")
	}
	return accessToken, uuid.New().String(), nil
}
