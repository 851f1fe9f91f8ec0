package jwtUtils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"cpduel/global"
)

type Claims struct {
	UserID int64 `json:"user_id"`
	Role   int   `json:"role"`
	jwt.RegisteredClaims
}

// GenToken 签发访问令牌
func GenToken(userID int64, role int) (string, error) {
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(global.ATOKEN_EFFECTIVE_TIME)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    global.Config.App.Name,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(global.Config.JWT.Secret))
}

// ParseToken 校验并解析令牌
func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(global.Config.JWT.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("token无效")
	}
	return claims, nil
}
