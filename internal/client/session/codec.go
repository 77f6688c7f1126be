package session

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/profilesync/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"
)

const keyInfo = "profilesync mock session v1"

// Claims is the structured session record carried inside a mock token.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

// Codec mints and resolves tokens for the local mock backend. Tokens are not
// meant to be secure; signing only keeps foreign or mangled strings from
// resolving to a user.
type Codec struct {
	key []byte
	now func() time.Time
}

// NewCodec derives the signing key from secret with HKDF-SHA256.
func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("mock token secret is empty")
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("derive token key: %w", err)
	}
	return &Codec{key: key, now: time.Now}, nil
}

// Issue returns a new token for userID. Two calls never return the same
// token because every token carries a fresh uuid.
func (c *Codec) Issue(userID string) (string, time.Time, error) {
	issuedAt := c.now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			Subject:  userID,
			IssuedAt: jwt.NewNumericDate(issuedAt),
		},
		UserID: userID,
	})

	signed, err := token.SignedString(c.key)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, issuedAt, nil
}

// UserID resolves the user id a token was issued for. Signed tokens from this
// codec and legacy positional tokens are accepted; anything else fails with
// common.ErrUnauthorized.
func (c *Codec) UserID(token string) (string, error) {
	if token == "" {
		return "", common.NewAPIError(common.ErrUnauthorized, 0, "access token required")
	}
	if strings.HasPrefix(token, common.LegacyTokenPrefix+"_") {
		return ParseLegacyToken(token)
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return c.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return "", common.NewAPIError(common.ErrUnauthorized, 0, "invalid mock access token")
	}
	if claims.UserID == "" {
		return "", common.NewAPIError(common.ErrUnauthorized, 0, "token carries no user id")
	}
	return claims.UserID, nil
}

// ParseLegacyToken reconstructs the user id from token_<userId>_<timestamp>,
// where userId is user_<timestamp>_<random>. The id is exactly the three
// segments following the token_ prefix.
func ParseLegacyToken(token string) (string, error) {
	parts := strings.Split(token, "_")
	if len(parts) != 5 ||
		parts[0] != common.LegacyTokenPrefix ||
		parts[1] != common.UserIDPrefix ||
		!isDigits(parts[2]) ||
		parts[3] == "" ||
		!isDigits(parts[4]) {
		return "", common.NewAPIError(common.ErrUnauthorized, 0, "invalid mock access token")
	}
	return strings.Join(parts[1:4], "_"), nil
}

// NewUserID generates user_<unixMillis>_<random>.
func NewUserID(now time.Time) (string, error) {
	random, err := common.MakeRandBase36String(9)
	if err != nil {
		return "", err
	}
	return common.UserIDPrefix + "_" + strconv.FormatInt(now.UnixMilli(), 10) + "_" + random, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
