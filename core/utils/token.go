package utils

import (
	stderrors "errors"
	"fmt"

	"gclub-api/core/config"
	"gclub-api/core/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenData is the identity the surrounding auth layer encodes for us: the
// engine only consumes an already-authenticated user id and role.
type TokenData struct {
	UserID uuid.UUID
	Role   string
}

func ValidateAndParseToken(tokenString string) (*TokenData, error) {
	cfg, ok := config.GetSafe()
	if !ok {
		return nil, errors.NewAppError(errors.ErrInternalServer, "config not initialized", nil)
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.Auth.JWTSecret), nil
	})
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.NewAppError(errors.ErrTokenExpired, "token expired", err)
		}
		return nil, errors.NewAppError(errors.ErrInvalidTokenFormat, "invalid token", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.NewAppError(errors.ErrInvalidTokenFormat, "invalid token claims", nil)
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.NewAppError(errors.ErrInvalidTokenFormat, "missing subject claim", nil)
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidTokenFormat, "subject is not a valid user id", err)
	}

	role, _ := claims["role"].(string)

	return &TokenData{UserID: userID, Role: role}, nil
}
