package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SebasVLANQ/calendar/internal/auth"
	"github.com/SebasVLANQ/calendar/internal/config"
	"github.com/SebasVLANQ/calendar/internal/model"
	"github.com/SebasVLANQ/calendar/internal/repository"
	"github.com/SebasVLANQ/calendar/internal/service"
	"github.com/SebasVLANQ/calendar/internal/utils"
)

// AuthHandler bundles dependencies for sign-up, login and session
// endpoints. Successful sign-ins and sign-outs are published to the
// auth broker so other components can react without a global listener.
type AuthHandler struct {
	Cfg      config.Config
	Profiles *repository.ProfileRepo
	Tokens   *repository.TokenRepo
	Broker   *auth.Broker
}

func NewAuthHandler(cfg config.Config, p *repository.ProfileRepo, t *repository.TokenRepo, b *auth.Broker) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Profiles: p, Tokens: t, Broker: b}
}

// ----- DTOs -----

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}
type passwordReq struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type authResp struct {
	User    model.UserProfile `json:"user"`
	Access  tokenPart         `json:"access"`
	Refresh tokenPart         `json:"refresh"`
}

// issueTokens creates an access/refresh pair and stores the refresh
// hash for later validation.
func (h *AuthHandler) issueTokens(ctx context.Context, p model.UserProfile) (*authResp, error) {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, p.ID, p.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return nil, err
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return nil, err
	}
	if err := h.Tokens.StoreRefresh(ctx, p.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return nil, err
	}
	return &authResp{
		User:    p,
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw back to client
	}, nil
}

// Register creates the auth identity and its paired profile, then
// returns tokens immediately so the user is signed in. Field-level
// validation failures come back as a typed per-field errors object and
// never reach storage.
func (h *AuthHandler) Register(c echo.Context) error {
	var req service.ProfileForm
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if errs := service.ValidateProfileForm(req, true); !errs.OK() {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
	}

	role := strings.ToUpper(strings.TrimSpace(c.QueryParam("role")))
	if role != model.RoleProvider {
		role = model.RoleCustomer
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	profile := model.UserProfile{
		Username:           strings.TrimSpace(req.Username),
		FullName:           strings.TrimSpace(req.FullName),
		Email:              req.Email,
		Phone:              strings.TrimSpace(req.Phone),
		Age:                req.Age,
		CountryOfResidence: strings.TrimSpace(req.CountryOfResidence),
		CityTownName:       strings.TrimSpace(req.CityTownName),
		Role:               role,
	}
	if err := h.Profiles.Create(ctx, &profile, req.Password, h.Cfg.BcryptCost); err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return c.JSON(http.StatusConflict, echo.Map{"errors": service.ProfileFormErrors{Username: "Username already exists"}})
		}
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"errors": service.ProfileFormErrors{Email: "Email already exists"}})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create profile failed"})
	}

	resp, err := h.issueTokens(ctx, profile)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	if h.Broker != nil {
		h.Broker.Publish(auth.StateChange{Kind: auth.SignedIn, UserID: profile.ID, Profile: &profile})
	}
	return c.JSON(http.StatusCreated, resp)
}

// Login verifies credentials and returns a new token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Profiles.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	hash, err := h.Profiles.PasswordHash(ctx, p.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(hash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	resp, err := h.issueTokens(ctx, p)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	if h.Broker != nil {
		h.Broker.Publish(auth.StateChange{Kind: auth.SignedIn, UserID: p.ID, Profile: &p})
	}
	return c.JSON(http.StatusOK, resp)
}

// Refresh validates the presented refresh token by hash, revokes it and
// issues a new pair (rotation).
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	raw := strings.TrimSpace(req.RefreshToken)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hash := utils.HashRefreshRaw(raw)
	userID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "revoke failed"})
	}
	p, err := h.Profiles.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	resp, err := h.issueTokens(ctx, p)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	return c.JSON(http.StatusOK, resp)
}

// Logout invalidates the presented refresh token and announces the
// sign-out on the broker. It does not require a JWT; a valid refresh
// token in the body is enough to terminate the session.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	raw := strings.TrimSpace(req.RefreshToken)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hash := utils.HashRefreshRaw(raw)
	userID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "revoke failed"})
	}
	if h.Broker != nil {
		h.Broker.Publish(auth.StateChange{Kind: auth.SignedOut, UserID: userID})
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	p, err := h.Profiles.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": p})
}

// UpdatePassword changes the caller's password after verifying the
// current one. All refresh tokens are revoked so stolen sessions die
// with the old password.
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req passwordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if len(req.NewPassword) < service.MinPasswordLen {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": service.ProfileFormErrors{Password: "Password must be at least 6 characters"}})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hash, err := h.Profiles.PasswordHash(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(hash, req.CurrentPassword) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "current password incorrect"})
	}
	if err := h.Profiles.UpdatePassword(ctx, userID, req.NewPassword, h.Cfg.BcryptCost); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if err := h.Tokens.RevokeAllForUser(ctx, userID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "revoke failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
