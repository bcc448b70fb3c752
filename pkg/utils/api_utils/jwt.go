package apiutils

import (
	"time"

	"github.com/Roll-Play/votechain/pkg/config"
	"github.com/golang-jwt/jwt"
)

// CreateJWT signs a voter token for voterID that expires after expireAt.
func CreateJWT(voterID, secret string, expireAt time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": config.TokenIssuer,
		"sub": voterID,
		"exp": time.Now().Add(expireAt).Unix(),
	})

	return token.SignedString([]byte(secret))
}
