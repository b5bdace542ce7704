package handlers

import (
	"net/http"
	"time"

	"flowtask/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionHandler issues tokens carrying a user identifier. There is no
// account store; whoever presents an email gets a token for it. The token
// exists so the realtime socket has something verifiable to hold, not as an
// access-control boundary on the REST surface.
type SessionHandler struct {
	auth config.AuthConfig
}

func NewSessionHandler(auth config.AuthConfig) *SessionHandler {
	return &SessionHandler{auth: auth}
}

func (h *SessionHandler) CreateSession(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": input.Email,
		"iat": now.Unix(),
		"exp": now.Add(h.auth.SessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.auth.SessionSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign session token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      signed,
		"email":      input.Email,
		"expires_in": int64(h.auth.SessionTTL.Seconds()),
	})
}
