package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/saulo-duarte/quiz-proctor/internal/config"
)

const (
	RoleAdmin = "admin"
	RoleGroup = "group"
)

var jwtSecret []byte

var ErrInvalidToken = errors.New("invalid token")

type UserClaims struct {
	UserID          string `json:"user_id"`
	Role            string `json:"role"`
	GroupIdentifier string `json:"group_identifier,omitempty"`
	jwt.RegisteredClaims
}

func Init() {
	secret := config.Conf.GetString("jwt_secret")
	if secret == "" {
		panic("JWT_SECRET must be set")
	}
	jwtSecret = []byte(secret)
}

func GenerateJWT(userID, role string, duration time.Duration) (string, error) {
	return sign(&UserClaims{UserID: userID, Role: role}, duration)
}

// GenerateGroupJWT issues the token a logged-in trio uses for the quiz
// attempt and the proctoring socket.
func GenerateGroupJWT(groupID, groupIdentifier string, duration time.Duration) (string, error) {
	return sign(&UserClaims{
		UserID:          groupID,
		Role:            RoleGroup,
		GroupIdentifier: groupIdentifier,
	}, duration)
}

func sign(claims *UserClaims, duration time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ValidateJWT(tokenStr string) (*UserClaims, error) {
	claims := &UserClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
