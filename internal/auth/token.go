package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid access token")

// Claims - данные пользователя из токена доступа (Keycloak-совместимые).
// Роли приходят в realm_access.roles; drfo - национальный идентификатор
// (РНОКПП), используется как адрес канала Diia.
type Claims struct {
	Username    string `json:"preferred_username"`
	Drfo        string `json:"drfo"`
	RealmAccess struct {
		Roles []string `json:"roles"`
	} `json:"realm_access"`
	jwt.RegisteredClaims
}

// UserID возвращает идентификатор пользователя (subject токена).
func (c *Claims) UserID() string {
	return c.Subject
}

// Roles возвращает список ролей. nil означает, что ролей в токене нет
// вовсе - это отличается от пустого списка и трактуется как отказ.
func (c *Claims) Roles() []string {
	return c.RealmAccess.Roles
}

// TokenParser разбирает непрозрачный токен доступа в Claims.
// Сервисы зависят от интерфейса, чтобы в тестах подставлять готовые Claims.
type TokenParser interface {
	Parse(accessToken string) (*Claims, error)
}

type JWTParser struct {
	secret []byte
}

func NewJWTParser(secret string) *JWTParser {
	return &JWTParser{secret: []byte(secret)}
}

// Parse проверяет подпись и разбирает claims.
func (p *JWTParser) Parse(accessToken string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(accessToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
