package controllerImp

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"airrvie/entities"
	"airrvie/pkg/apperr"
	"airrvie/pkg/auth/repository"
	"airrvie/pkg/middleware"
	"airrvie/pkg/otp"
	"airrvie/pkg/token"
)

type AuthCtrl struct {
	repo     repository.AuthRepository
	otp      *otp.Store
	secret   string
	ttl      time.Duration
	otpDebug bool
}

func New(repo repository.AuthRepository, otpStore *otp.Store, secret string, ttl time.Duration, otpDebug bool) *AuthCtrl {
	return &AuthCtrl{repo: repo, otp: otpStore, secret: secret, ttl: ttl, otpDebug: otpDebug}
}

type signupReq struct {
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Language string `json:"language"`
}

type loginReq struct {
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func userPayload(u *entities.User) map[string]any {
	return map[string]any{
		"id":        u.ID,
		"name":      u.DisplayName,
		"email":     u.Email,
		"phone":     u.Phone,
		"language":  u.Locale,
		"fontScale": u.FontScale,
		"createdAt": u.CreatedAt.Format(time.RFC3339),
	}
}

func (h *AuthCtrl) Register(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "bad json"))
	}
	req.Phone = strings.TrimSpace(req.Phone)
	req.Email = strings.TrimSpace(req.Email)
	if req.Phone == "" && req.Email == "" {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "phone or email is required"))
	}
	if req.Password == "" {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "password is required"))
	}

	existing, err := h.lookup(req.Phone, req.Email)
	if err != nil {
		return apperr.JSON(c, err)
	}
	if existing != nil {
		return apperr.JSON(c, apperr.With(apperr.ErrConflict, "user already registered"))
	}

	hash, err := token.HashPassword(req.Password)
	if err != nil {
		return apperr.JSON(c, err)
	}
	u := &entities.User{
		PasswordHash: hash,
		DisplayName:  req.Name,
	}
	if req.Phone != "" {
		u.Phone = &req.Phone
	}
	if req.Email != "" {
		u.Email = &req.Email
	}
	if req.Language != "" {
		u.Locale = req.Language
	}
	if err := h.repo.Create(u); err != nil {
		return apperr.JSON(c, err)
	}

	tok, err := token.Issue(h.secret, u.ID, h.ttl)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Registration successful",
		"user":    userPayload(u),
		"token":   tok,
	})
}

func (h *AuthCtrl) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "bad json"))
	}
	req.Phone = strings.TrimSpace(req.Phone)
	req.Email = strings.TrimSpace(req.Email)
	if req.Phone == "" && req.Email == "" {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "phone or email is required"))
	}

	u, err := h.lookup(req.Phone, req.Email)
	if err != nil {
		return apperr.JSON(c, err)
	}
	if u == nil || !token.VerifyPassword(req.Password, u.PasswordHash) {
		return apperr.JSON(c, apperr.With(apperr.ErrUnauthorized, "invalid credentials"))
	}

	tok, err := token.Issue(h.secret, u.ID, h.ttl)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    userPayload(u),
		"token":   tok,
	})
}

// Logout is client-side token removal; the endpoint exists for symmetry.
func (h *AuthCtrl) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "Logout successful"})
}

func (h *AuthCtrl) Me(c echo.Context) error {
	u, err := h.repo.FindByID(middleware.UID(c))
	if err != nil {
		return apperr.JSON(c, err)
	}
	if u == nil {
		return apperr.JSON(c, apperr.With(apperr.ErrNotFound, "user not found"))
	}
	return c.JSON(http.StatusOK, userPayload(u))
}

type otpReq struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (h *AuthCtrl) RequestOTP(c echo.Context) error {
	var req otpReq
	if err := c.Bind(&req); err != nil {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "bad json"))
	}
	contact := strings.TrimSpace(req.Phone)
	if contact == "" {
		contact = strings.TrimSpace(req.Email)
	}
	if contact == "" {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "phone or email is required"))
	}
	code, err := h.otp.Issue(contact)
	if err != nil {
		return apperr.JSON(c, err)
	}
	logrus.WithField("contact", contact).Info("otp issued")
	resp := map[string]string{"message": "OTP sent successfully"}
	if h.otpDebug {
		// Delivery is out of scope; expose the code only in debug setups.
		resp["otp"] = code
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AuthCtrl) VerifyOTP(c echo.Context) error {
	var req otpReq
	if err := c.Bind(&req); err != nil {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "bad json"))
	}
	contact := strings.TrimSpace(req.Phone)
	if contact == "" {
		contact = strings.TrimSpace(req.Email)
	}
	if contact == "" {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "phone or email is required"))
	}
	if !h.otp.Verify(contact, req.OTP) {
		return apperr.JSON(c, apperr.With(apperr.ErrInvalidInput, "OTP not found or expired"))
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "OTP verified successfully"})
}

func (h *AuthCtrl) lookup(phone, email string) (*entities.User, error) {
	if phone != "" {
		return h.repo.FindByPhone(phone)
	}
	return h.repo.FindByEmail(email)
}
