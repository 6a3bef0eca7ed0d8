package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/phrazzld/taskify-api/internal/api/shared"
	"github.com/phrazzld/taskify-api/internal/service"
)

// RefreshTokenCookie is the cookie carrying the refresh token.
const RefreshTokenCookie = "refreshToken"

// AuthHandler handles authentication and profile requests.
type AuthHandler struct {
	auth           service.AuthService
	maxAvatarBytes int64
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth service.AuthService, maxAvatarBytes int64) *AuthHandler {
	return &AuthHandler{auth: auth, maxAvatarBytes: maxAvatarBytes}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	pair, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    pair.RefreshToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
	})

	shared.RespondWithData(w, r, http.StatusOK, "Logged in successfully!", TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.auth.Signup(r.Context(), service.SignupInput{
		Name:     shared.Sanitize(req.Name),
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "Sign Up successfully!", user)
}

// RefreshToken handles POST /auth/refresh-token. The token is read from the
// refreshToken cookie, falling back to a JSON body.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	token := ""
	if cookie, err := r.Cookie(RefreshTokenCookie); err == nil {
		token = cookie.Value
	}
	if token == "" {
		var req RefreshTokenRequest
		if err := shared.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
			HandleAPIError(w, r, errMalformedBody)
			return
		}
		token = req.RefreshToken
	}
	if token == "" {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "You are not authorized!")
		return
	}

	access, err := h.auth.RefreshToken(r.Context(), token)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "Access token generated successfully!",
		TokenResponse{AccessToken: access})
}

// ChangePassword handles POST /auth/change-password.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromRequest(w, r)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.auth.ChangePassword(r.Context(), principal, req.OldPassword, req.NewPassword); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "Password Changed successfully",
		MessageResponse{Message: "Password changed successfully!"})
}

// ForgotPassword handles POST /auth/forgot-password.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.auth.ForgotPassword(r.Context(), req.Email); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "Check your email!", nil)
}

// ResetPassword handles POST /auth/reset-password. The reset token is read
// from the Authorization header, bare or as a Bearer token.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := shared.TokenFromHeader(r.Header.Get("Authorization"))
	if token == "" {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "You are not authorized!")
		return
	}

	var req ResetPasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.auth.ResetPassword(r.Context(), token, req.Password); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "Password Reset!", nil)
}

// GetMyProfile handles GET /auth/profile.
func (h *AuthHandler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromRequest(w, r)
	if !ok {
		return
	}

	profile, err := h.auth.GetMyProfile(r.Context(), principal)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "My profile data fetched!", profile)
}

// UpdateMyProfile handles PUT /auth/profile.
func (h *AuthHandler) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromRequest(w, r)
	if !ok {
		return
	}

	var req ProfileUpdateRequest
	body, err := decodeUpdate(r, &req, h.maxAvatarBytes)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	defer body.Close()

	if !validate(w, r, &req) {
		return
	}

	user, err := h.auth.UpdateMyProfile(r.Context(), principal, body.avatar, req.toService())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "My profile updated!", user)
}
