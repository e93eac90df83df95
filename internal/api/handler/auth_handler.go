package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/spar-shoe/storefront-api/internal/api/metrics"
	"github.com/spar-shoe/storefront-api/internal/core/domain"
	"github.com/spar-shoe/storefront-api/internal/core/ports"
)

const (
	registeredMessage   = "Registration successful! Please check your email to verify your account before logging in."
	resetSentMessage    = "If the account exists, a password reset email has been sent."
	passwordSetMessage  = "Password has been successfully reset."
	verifyFailedPage    = "<h1>Email verification link is invalid or has expired.</h1><p>Please re-register or contact support.</p>"
)

type AuthHandler struct {
	accounts   ports.AccountService
	appBaseURL string
}

// NewAuthHandler builds the auth endpoints. appBaseURL is where the
// verify-email success redirect lands (the storefront frontend).
func NewAuthHandler(accounts ports.AccountService, appBaseURL string) *AuthHandler {
	return &AuthHandler{accounts: accounts, appBaseURL: appBaseURL}
}

// Register creates a new unverified account and queues the verification email.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.accounts.Register(c.Request().Context(), req.Name, req.Email, req.Password); err != nil {
		metrics.RegistrationsTotal.WithLabelValues(registerResult(err)).Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, messageResponse{Message: registeredMessage})
}

// VerifyEmail consumes a verification token from the emailed link. Browsers
// land here directly, so success redirects to the login page and failure
// renders a small explanatory page instead of JSON.
//
// @Summary      Verify an email address
// @Tags         auth
// @Produce      html
// @Param        token  path  string  true  "Verification token"
// @Success      302
// @Failure      400  {string}  string
// @Router       /auth/verify-email/{token} [get]
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	err := h.accounts.VerifyEmail(c.Request().Context(), c.Param("token"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			metrics.TokenConsumesTotal.WithLabelValues("verification", "invalid").Inc()
			return c.HTML(http.StatusBadRequest, verifyFailedPage)
		}
		return err
	}

	metrics.TokenConsumesTotal.WithLabelValues("verification", "ok").Inc()
	return c.Redirect(http.StatusFound, verifiedRedirect(h.appBaseURL))
}

// Login authenticates credentials and returns a signed session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.accounts.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: result.Token, Role: result.Role, Name: result.Name})
}

// ForgotPassword queues a reset email. The response is the same whether or
// not the email exists, so the endpoint cannot be used to probe for accounts.
//
// @Summary      Request a password reset link
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      200   {object}  messageResponse
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.accounts.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: resetSentMessage})
}

// ResetPassword consumes a reset token and installs the new password.
//
// @Summary      Reset a password with a token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        token  path      string                true  "Reset token"
// @Param        body   body      resetPasswordRequest  true  "New password"
// @Success      200    {object}  messageResponse
// @Failure      400    {object}  map[string]string
// @Router       /auth/reset-password/{token} [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.accounts.ResetPassword(c.Request().Context(), c.Param("token"), req.NewPassword); err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			metrics.TokenConsumesTotal.WithLabelValues("reset", "invalid").Inc()
		}
		return err
	}

	metrics.TokenConsumesTotal.WithLabelValues("reset", "ok").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: passwordSetMessage})
}

func registerResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		return "email_taken"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	default:
		return "error"
	}
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotVerified):
		return "not_verified"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	default:
		return "error"
	}
}

func verifiedRedirect(appBaseURL string) string {
	return appBaseURL + "/login?verified=true"
}
