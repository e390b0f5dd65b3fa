package session

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/estatekeeper/internal/common"
)

// ErrNoUserID is returned when an operation needs the signed-in user's id
// and none can be resolved (no profile, no usable claims, nothing cached).
var ErrNoUserID = errors.New("no user id in session")

// userIDFromToken pulls the user id out of the bearer token's claims
// without verifying the signature: the client has no key and does not
// trust the token for anything beyond addressing its own requests.
// Backends have been observed to use different claim keys.
func userIDFromToken(token string) (string, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return "", common.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", common.ErrInvalidToken
	}

	for _, key := range []string{"userId", "user_id", "id", "sub"} {
		if v, ok := claims[key].(string); ok && v != "" {
			return v, nil
		}
	}
	return "", common.ErrInvalidToken
}

func isNotFound(err error) bool {
	return errors.Is(err, common.ErrorNotFound)
}
