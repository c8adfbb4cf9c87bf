package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// 会话 cookie 里只放签名过的 session id，后端 token 不下发到浏览器

type Claims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

type CookieSigner struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

func (s *CookieSigner) Issue(sid string) (string, error) {
	now := time.Now()
	claims := Claims{
		SID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

func (s *CookieSigner) Parse(tokenStr string) (string, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg")
		}
		return s.Secret, nil
	}, jwt.WithIssuer(s.Issuer), jwt.WithLeeway(60*time.Second))

	if err != nil {
		return "", err
	}
	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid || c.SID == "" {
		return "", errors.New("invalid session cookie")
	}
	return c.SID, nil
}
