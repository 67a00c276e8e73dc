package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WSTicketClaims are the claims carried by the short-lived tokens minted
// for websocket upgrades. Browsers cannot attach an Authorization header
// to a websocket handshake, so clients exchange their Firebase bearer
// token for one of these over HTTP and pass it as a query parameter.
type WSTicketClaims struct {
	UserID   primitive.ObjectID `json:"user_id"`
	UserType string             `json:"user_type"`
	jwt.RegisteredClaims
}

func GenerateWSTicket(userID primitive.ObjectID, userType, secretKey string) (string, error) {
	claims := &WSTicketClaims{
		UserID:   userID,
		UserType: userType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(WSTicketTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    AppName,
			Subject:   userID.Hex(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}

func ValidateWSTicket(tokenString, secretKey string) (*WSTicketClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &WSTicketClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*WSTicketClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid ticket")
}
