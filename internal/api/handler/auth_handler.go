package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/portail/consulting-portal/internal/api/metrics"
	"github.com/portail/consulting-portal/internal/core/domain"
	"github.com/portail/consulting-portal/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Avatar   string `json:"img"`
}

type sessionView struct {
	ID     string       `json:"id"`
	User   *domain.User `json:"user"`
	Role   string       `json:"role"`
	Notice string       `json:"notice,omitempty"`
}

type authResponse struct {
	Token        string       `json:"token,omitempty"`
	Session      sessionView  `json:"session"`
	Notification Notification `json:"notification"`
}

func viewSession(s *domain.Session) sessionView {
	u := s.User
	return sessionView{ID: s.ID, User: &u, Role: u.DisplayRole().String(), Notice: s.Notice}
}

// Register creates an account and opens a session.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Email, password and confirmation"
// @Success      201   {object}  authResponse
// @Failure      409   {object}  map[string]any
// @Failure      422   {object}  map[string]any
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	res, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	metrics.AuthEventsTotal.WithLabelValues("register", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{
		Token:        res.Token,
		Session:      viewSession(res.Session),
		Notification: Success("Account created successfully"),
	})
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  map[string]any
// @Failure      422   {object}  map[string]any
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	res, err := h.authService.SignIn(c.Request().Context(), req.Email, req.Password)
	metrics.AuthEventsTotal.WithLabelValues("login", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{
		Token:        res.Token,
		Session:      viewSession(res.Session),
		Notification: Success("Signed in successfully"),
	})
}

// Logout ends the current session. With delete_account=true the online
// flag is left untouched.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Param        delete_account  query     bool  false  "Sign out as part of an account deletion"
// @Success      200             {object}  messageResponse
// @Failure      401             {object}  map[string]any
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	deleting, _ := strconv.ParseBool(c.QueryParam("delete_account"))

	h.authService.SignOut(c.Request().Context(), sess, deleting)
	metrics.AuthEventsTotal.WithLabelValues("logout", metrics.ResultSuccess).Inc()

	return c.JSON(http.StatusOK, done("Signed out successfully"))
}

// Session returns the cached session of the bearer token.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionView
// @Failure      401  {object}  map[string]any
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, viewSession(sess))
}

// Profile edits the signed-in user's email, username, password or avatar.
//
// @Summary      Update own profile
// @Tags         auth
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        data    formData  string  false  "profileRequest as JSON (multipart)"
// @Param        avatar  formData  file    false  "Avatar image"
// @Success      200     {object}  authResponse
// @Failure      401     {object}  map[string]any
// @Router       /auth/profile [put]
func (h *AuthHandler) Profile(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := bindRecord(c, &req); err != nil {
		return err
	}
	files := newFormFiles(c)
	defer files.Close()

	avatar, err := files.attachment("avatar", req.Avatar)
	if err != nil {
		return err
	}

	updated, err := h.authService.SaveProfile(c.Request().Context(), sess, ports.ProfileInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Avatar:   avatar,
	})
	metrics.AuthEventsTotal.WithLabelValues("profile", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{
		Session:      viewSession(updated),
		Notification: Success("Profile updated successfully"),
	})
}
