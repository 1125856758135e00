package api

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	adminSubjectClaim = "admin"
	adminTokenIssuer  = "project-catalog"
)

// invalidPasswordMessage is the only failure message login ever returns
const invalidPasswordMessage = "invalid password"

// tokenIssuer signs and verifies the static admin token. The token carries no expiry and is
// identical for every successful login with the same secret.
type tokenIssuer struct {
	secret []byte
}

func newTokenIssuer(secret string) tokenIssuer {
	return tokenIssuer{secret: []byte(secret)}
}

func (t tokenIssuer) issue() (string, error) {
	if len(t.secret) == 0 {
		return "", errors.New("admin token secret is not configured")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: adminSubjectClaim,
		Issuer:  adminTokenIssuer,
	})
	return token.SignedString(t.secret)
}

// verify checks the signature and static claims and returns the subject
func (t tokenIssuer) verify(raw string) (string, error) {
	if len(t.secret) == 0 {
		return "", errors.New("admin token secret is not configured")
	}
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(adminTokenIssuer))
	if err != nil {
		return "", err
	}
	if claims.Subject != adminSubjectClaim {
		return "", fmt.Errorf("unexpected subject %q", claims.Subject)
	}
	return claims.Subject, nil
}

type authHandler struct {
	responder     Responder
	logger        zerolog.Logger
	adminPassword string
	tokens        tokenIssuer
}

func newAuthHandler(adminPassword string, tokens tokenIssuer, development bool) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:     NewResponder(logger).WithDevelopment(development),
		logger:        logger,
		adminPassword: adminPassword,
		tokens:        tokens,
	}
}

func (h authHandler) passwordMatches(candidate string) bool {
	if h.adminPassword == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(h.adminPassword)) == 1
}

// login exchanges the admin password for the admin token
// @Summary Admin login
// @Description Compares the password with the configured admin password and returns the admin token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Admin password"
// @Success 200 {object} LoginResponse "Token issued"
// @Failure 401 {object} LoginResponse "Invalid password"
// @Router /auth/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)).Decode(&req); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to decode login request body")
		}

		if !h.passwordMatches(req.Password) {
			recordLoginAttempt(false)
			h.responder.WriteJSONStatus(w, http.StatusUnauthorized, LoginResponse{Success: false, Error: invalidPasswordMessage})
			return
		}

		token, err := h.tokens.issue()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		recordLoginAttempt(true)
		h.logger.Info().Msg("admin login succeeded")
		h.responder.WriteJSON(w, LoginResponse{Success: true, Token: token})
	}
}
