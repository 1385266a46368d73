package response

import (
	"encoding/json"
	"strconv"

	"github.com/jrsteele09/go-vk-client/internal/utils"
	"github.com/pkg/errors"
)

// TokenResponse is the body returned by the access_token endpoint.
type TokenResponse struct {
	UserID      *int64 `json:"-"`
	AccessToken string `json:"access_token"`
	ExpiresIn   *int64 `json:"-"`
	Email       string `json:"email,omitempty"`
}

type tokenWire struct {
	UserID      json.Number `json:"user_id"`
	AccessToken string      `json:"access_token"`
	ExpiresIn   json.Number `json:"expires_in"`
	Email       string      `json:"email"`
}

// DecodeToken reads the token exchange fields out of p. Numbers may arrive as
// JSON numbers or numeric strings; absent numbers stay nil.
func DecodeToken(p Payload) (*TokenResponse, error) {
	var w tokenWire
	if err := p.Unmarshal(&w); err != nil {
		return nil, errors.Wrap(err, "[DecodeToken] unexpected token response")
	}

	userID, err := optionalInt(w.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "[DecodeToken] user_id")
	}
	expiresIn, err := optionalInt(w.ExpiresIn)
	if err != nil {
		return nil, errors.Wrap(err, "[DecodeToken] expires_in")
	}

	return &TokenResponse{
		UserID:      userID,
		AccessToken: w.AccessToken,
		ExpiresIn:   expiresIn,
		Email:       w.Email,
	}, nil
}

func optionalInt(n json.Number) (*int64, error) {
	if n == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		return nil, err
	}
	return utils.Ptr(v), nil
}
