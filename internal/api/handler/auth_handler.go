package handler

import (
	"errors"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/careerhub/jobboard-web/internal/api/middleware"
	"github.com/careerhub/jobboard-web/internal/core/domain"
	"github.com/careerhub/jobboard-web/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Email    string `json:"email"    form:"email"`
	Password string `json:"password" form:"password"`
}

type registerRequest struct {
	Role            string `json:"role"            form:"role"`
	Email           string `json:"email"           form:"email"`
	Password        string `json:"password"        form:"password"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
}

type verifyRequest struct {
	Email            string `json:"email"            form:"email"`
	VerificationCode string `json:"verificationCode" form:"verificationCode"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" form:"email"`
}

type resetPasswordRequest struct {
	Email           string `json:"email"           form:"email"`
	Password        string `json:"password"        form:"password"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" form:"currentPassword"`
	NewPassword     string `json:"newPassword"     form:"newPassword"`
}

type sessionResponse struct {
	Authenticated bool        `json:"authenticated"`
	Role          domain.Role `json:"role,omitempty"`
	HasProfile    bool        `json:"hasProfile"`
	Email         string      `json:"email,omitempty"`
	Home          string      `json:"home"`
}

// resetStep tells the forgot-password page which form to show next.
type resetStep struct {
	Step  string `json:"step"`
	Email string `json:"email"`
}

func verifyRoute(email string) string {
	return "/verify?" + url.Values{"email": {email}}.Encode()
}

// LoginPage renders the login view.
//
// @Summary      Login page
// @Tags         auth
// @Produce      json
// @Success      200  {object}  Page
// @Router       /login [get]
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return render(c, "login", nil)
}

// Unauthorized renders the view the guard sends role mismatches to.
//
// @Summary      Unauthorized page
// @Tags         auth
// @Produce      json
// @Success      200  {object}  Page
// @Router       /unauthorized [get]
func (h *AuthHandler) Unauthorized(c echo.Context) error {
	return render(c, "unauthorized", nil)
}

// Session reports who is looking at the page, for navigation bars.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	sess, _ := middleware.CurrentSession(c)
	return render(c, "session", sessionResponse{
		Authenticated: sess.Authenticated(),
		Role:          sess.Role,
		HasProfile:    sess.HasProfile,
		Email:         sess.Email,
		Home:          sess.LandingRoute(),
	})
}

// Login authenticates the actor and redirects to the landing route of its role.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      303
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      502   {object}  ErrorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	sid := middleware.Rotate(c)
	route, err := h.authService.Login(c.Request().Context(), sid, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrEmailNotVerified) {
			n := info("Please verify your email to continue.")
			return seeOther(c, verifyRoute(req.Email), &n)
		}
		return err
	}

	n := success("Login successful")
	return seeOther(c, route, &n)
}

// Register creates an account and continues with email verification.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      303
// @Failure      400   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Role:     domain.Role(req.Role),
		Email:    req.Email,
		Password: req.Password,
	}, req.ConfirmPassword)
	if err != nil {
		countViolations("register", err)
		return err
	}

	n := success("Registration successful")
	return seeOther(c, verifyRoute(req.Email), &n)
}

// Verify confirms the email address with the code sent by the backend.
//
// @Summary      Verify email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyRequest  true  "Email and 6-digit code"
// @Success      303
// @Failure      422   {object}  ErrorResponse
// @Router       /verify [post]
func (h *AuthHandler) Verify(c echo.Context) error {
	var req verifyRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.authService.VerifyEmail(c.Request().Context(), req.Email, req.VerificationCode); err != nil {
		countViolations("verify", err)
		return err
	}
	n := success("Email verified successfully")
	return seeOther(c, middleware.LoginRoute, &n)
}

// ForgotPassword sends a reset code to the address.
//
// @Summary      Request a password reset code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      200   {object}  Page
// @Failure      422   {object}  ErrorResponse
// @Router       /forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	msg, err := h.authService.SendResetCode(c.Request().Context(), req.Email)
	if err != nil {
		countViolations("forgot-password", err)
		return err
	}
	return render(c, "forgot-password", resetStep{Step: "code", Email: req.Email}, success(orDefault(msg, "Verification code sent")))
}

// VerifyResetCode checks the reset code before the new password is taken.
//
// @Summary      Verify a password reset code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyRequest  true  "Email and 6-digit code"
// @Success      200   {object}  Page
// @Failure      422   {object}  ErrorResponse
// @Router       /forgot-password/verify [post]
func (h *AuthHandler) VerifyResetCode(c echo.Context) error {
	var req verifyRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	msg, err := h.authService.VerifyResetCode(c.Request().Context(), req.Email, req.VerificationCode)
	if err != nil {
		countViolations("forgot-password", err)
		return err
	}
	return render(c, "forgot-password", resetStep{Step: "reset", Email: req.Email}, success(orDefault(msg, "Code verified")))
}

// ResetPassword sets the new password and sends the actor to login.
//
// @Summary      Reset a forgotten password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "New password"
// @Success      303
// @Failure      422   {object}  ErrorResponse
// @Router       /forgot-password/reset [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	msg, err := h.authService.ResetPassword(c.Request().Context(), req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		countViolations("forgot-password", err)
		return err
	}
	n := success(orDefault(msg, "Password updated successfully"))
	return seeOther(c, middleware.LoginRoute, &n)
}

// Logout clears the session and returns to login. It never fails for an
// anonymous visitor.
//
// @Summary      Logout
// @Tags         auth
// @Success      303
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sess, ok := middleware.CurrentSession(c)
	if ok {
		if err := h.authService.Logout(c.Request().Context(), middleware.SessionID(c), sess); err != nil {
			return err
		}
	}
	return seeOther(c, middleware.LoginRoute, nil)
}

// Settings renders the account settings view.
//
// @Summary      Account settings
// @Tags         auth
// @Produce      json
// @Success      200  {object}  Page
// @Router       /dashboard/settings [get]
// @Router       /employer-dashboard/settings [get]
// @Router       /admin/settings [get]
func (h *AuthHandler) Settings(c echo.Context) error {
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	return render(c, "settings", sessionResponse{
		Authenticated: true,
		Role:          sess.Role,
		HasProfile:    sess.HasProfile,
		Email:         sess.Email,
		Home:          sess.LandingRoute(),
	})
}

// ChangePassword updates the password of the logged-in actor.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  Page
// @Failure      422   {object}  ErrorResponse
// @Router       /dashboard/settings/password [post]
// @Router       /employer-dashboard/settings/password [post]
// @Router       /admin/settings/password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req changePasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	msg, err := h.authService.ChangePassword(c.Request().Context(), sess, req.CurrentPassword, req.NewPassword)
	if err != nil {
		countViolations("settings", err)
		return err
	}
	return render(c, "settings", nil, success(orDefault(msg, "Password updated successfully")))
}

// DeleteAccount removes the account and the session.
//
// @Summary      Delete account
// @Tags         auth
// @Success      303
// @Failure      502  {object}  ErrorResponse
// @Router       /dashboard/settings/delete [post]
// @Router       /employer-dashboard/settings/delete [post]
func (h *AuthHandler) DeleteAccount(c echo.Context) error {
	sid, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	msg, err := h.authService.DeleteAccount(c.Request().Context(), sid, sess)
	if err != nil {
		return err
	}
	n := success(orDefault(msg, "Account deleted"))
	return seeOther(c, middleware.LoginRoute, &n)
}

func orDefault(msg, def string) string {
	if msg == "" {
		return def
	}
	return msg
}
