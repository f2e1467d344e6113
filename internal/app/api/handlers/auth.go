package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"

	"github.com/fatflowers/motorvault/internal/models"
	"github.com/fatflowers/motorvault/internal/store"
	"github.com/fatflowers/motorvault/pkg/config"
	"github.com/fatflowers/motorvault/pkg/response"
	"github.com/fatflowers/motorvault/pkg/tool"
	"github.com/fatflowers/motorvault/pkg/types"
)

// Auth here is mocked: login/signup replace the local singleton user and mint
// a session token; nothing is verified against a real identity backend.

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required"`
}

type SessionResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func mintSessionToken(cfg *config.Config, user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(time.Duration(cfg.Auth.TokenTTLHours) * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Auth.TokenSecret))
}

func newTrialUser(cfg *config.Config, name, email, phone string) *models.User {
	return &models.User{
		ID:                 tool.GenerateUUIDV7(),
		Name:               name,
		Email:              email,
		Phone:              phone,
		SubscriptionStatus: types.SubscriptionStatusTrial,
		SubscriptionExpiry: time.Now().Add(time.Duration(cfg.Auth.TrialDays) * 24 * time.Hour),
	}
}

// @Summary      Mock login
// @Description  Replaces the local user with a trial account and returns a session token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Router       /api/v1/auth/login [post]
func Login(st *store.Store, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}

		user := st.User()
		if user == nil || user.Email != req.Email {
			// No stored account to match against; the mock flow just creates one.
			user = newTrialUser(cfg, "Vehicle Owner", req.Email, "")
		}
		st.SetUser(c.Request.Context(), user)

		token, err := mintSessionToken(cfg, user)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(&SessionResponse{Token: token, User: user}))
	}
}

// @Summary      Mock signup
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Router       /api/v1/auth/signup [post]
func Signup(st *store.Store, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}

		user := newTrialUser(cfg, req.Name, req.Email, req.Phone)
		st.SetUser(c.Request.Context(), user)

		token, err := mintSessionToken(cfg, user)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(&SessionResponse{Token: token, User: user}))
	}
}

// @Summary      Logout
// @Description  Removes the stored user (absent user key means logged out)
// @Tags         Auth
// @Produce      json
// @Router       /api/v1/auth/logout [post]
func Logout(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		st.SetUser(c.Request.Context(), nil)
		c.JSON(http.StatusOK, response.OKT(map[string]string{"status": "logged_out"}))
	}
}

// @Summary      Current user
// @Tags         Auth
// @Produce      json
// @Router       /api/v1/auth/me [get]
func Me(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, response.OKT(st.User()))
	}
}

func RegisterAuthRoutes(r gin.IRouter, st *store.Store, cfg *config.Config) {
	r.POST("/auth/login", Login(st, cfg))
	r.POST("/auth/signup", Signup(st, cfg))
	r.POST("/auth/logout", Logout(st))
	r.GET("/auth/me", Me(st))
}
