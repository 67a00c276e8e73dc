package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const ticketSecret = "test-ws-secret"

func TestWSTicketRoundTrip(t *testing.T) {
	userID := primitive.NewObjectID()

	ticket, err := GenerateWSTicket(userID, "driver", ticketSecret)
	require.NoError(t, err)

	claims, err := ValidateWSTicket(ticket, ticketSecret)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "driver", claims.UserType)
	assert.Equal(t, userID.Hex(), claims.Subject)
	assert.Equal(t, AppName, claims.Issuer)
}

func TestWSTicketRejectsWrongSecret(t *testing.T) {
	ticket, err := GenerateWSTicket(primitive.NewObjectID(), "client", ticketSecret)
	require.NoError(t, err)

	_, err = ValidateWSTicket(ticket, "some-other-secret")
	assert.Error(t, err)
}

func TestWSTicketRejectsExpiredTicket(t *testing.T) {
	claims := &WSTicketClaims{
		UserID:   primitive.NewObjectID(),
		UserType: "client",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-3 * time.Minute)),
			Issuer:    AppName,
		},
	}
	ticket, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ticketSecret))
	require.NoError(t, err)

	_, err = ValidateWSTicket(ticket, ticketSecret)
	assert.Error(t, err)
}

func TestWSTicketRejectsUnsignedTokens(t *testing.T) {
	claims := &WSTicketClaims{
		UserID: primitive.NewObjectID(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	ticket, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateWSTicket(ticket, ticketSecret)
	assert.Error(t, err, "only HMAC-signed tickets are accepted")
}
