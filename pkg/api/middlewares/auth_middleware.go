package middlewares

import (
	"errors"
	"net/http"
	"strings"

	apierrors "github.com/Roll-Play/votechain/pkg/api/error"
	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const VoterContextKey = "voter"

var ErrMissingAuthHeader = errors.New("missing authorization header")
var ErrInvalidSignMethod = errors.New("invalid signing method")
var ErrInvalidToken = errors.New("invalid token")

// VoterAuth requires an HS256 bearer token signed with secret and stores the
// token subject in the context under VoterContextKey.
func VoterAuth(secret string, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				logger.Debug("Client error",
					zap.Error(ErrMissingAuthHeader))
				return apierrors.CustomError(c, http.StatusUnauthorized, apierrors.UnauthorizedError)
			}

			tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, ErrInvalidSignMethod
				}
				return []byte(secret), nil
			})
			if err != nil {
				logger.Debug("Client error",
					zap.Error(err))
				return apierrors.CustomError(c, http.StatusUnauthorized, apierrors.UnauthorizedError)
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok || !token.Valid {
				logger.Debug("Client error",
					zap.Error(ErrInvalidToken))
				return apierrors.CustomError(c, http.StatusUnauthorized, apierrors.UnauthorizedError)
			}

			sub, _ := claims["sub"].(string)
			if sub == "" {
				logger.Debug("Client error",
					zap.String("cause", "token without subject"))
				return apierrors.CustomError(c, http.StatusUnauthorized, apierrors.UnauthorizedError)
			}

			c.Set(VoterContextKey, sub)
			return next(c)
		}
	}
}
