package server

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

func AuthValidateHeader(r *http.Request, username, password string) error {
	value := r.Header.Get("Authorization")
	if username == "" && password == "" {
		return nil
	}

	if !strings.HasPrefix(value, "Basic ") {
		return errors.New("invalid authorization header")
	}

	payload, err := base64.StdEncoding.DecodeString(value[6:])
	if err != nil {
		return fmt.Errorf("failed to decode authorization header: %w", err)
	}

	pair := strings.SplitN(string(payload), ":", 2)
	if len(pair) != 2 {
		return errors.New("invalid authorization payload format")
	}

	if subtle.ConstantTimeCompare([]byte(pair[0]), []byte(username)) != 1 || subtle.ConstantTimeCompare([]byte(pair[1]), []byte(password)) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}
