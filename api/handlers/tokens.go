package handlers

import (
	"net/http"

	"github.com/vox-platform/vox-auth-services/api/services"
)

// @Summary Issue a token
// @Description Exchange basic auth credentials for a signed bearer token backed by a revocable session.
// @Tags tokens
// @Accept json
// @Produce json
// @Param request body models.TokenRequest false "Token options"
// @Success 200 {object} models.TokenResponse
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Router /token [post]
func CreateToken(svc *services.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.CreateTokenService(w, r)
	}
}

// @Summary Get token metadata
// @Description Return the session metadata behind a token if it is still valid.
// @Tags tokens
// @Produce json
// @Param token path string true "Token"
// @Success 200 {object} models.TokenResponse
// @Failure 404 {object} models.APIError
// @Router /token/{token} [get]
func GetToken(svc *services.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.GetTokenService(w, r)
	}
}

// @Summary Check a token
// @Description Validity check without a body.
// @Tags tokens
// @Param token path string true "Token"
// @Success 204
// @Failure 404 {object} models.APIError
// @Router /token/{token} [head]
func CheckToken(svc *services.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.CheckTokenService(w, r)
	}
}

// @Summary Revoke a token
// @Description Delete the session behind a token, invalidating it immediately.
// @Tags tokens
// @Param token path string true "Token"
// @Success 204
// @Failure 404 {object} models.APIError
// @Router /token/{token} [delete]
func DeleteToken(svc *services.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.DeleteTokenService(w, r)
	}
}
