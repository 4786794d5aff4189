package app

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GET /api/calendar/auth?user_id=...
//
// Issues the Google consent URL for an owner to connect their calendar.
func (a *App) GoogleAuthHandler(c *gin.Context) {
	if a.OAuth == nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "google calendar not configured"})
		return
	}
	ownerID := c.Query("user_id")
	if ownerID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "user_id required"})
		return
	}

	state := fmt.Sprintf("user_%s_%d", ownerID, time.Now().Unix())
	c.JSON(http.StatusOK, gin.H{
		"auth_url": a.OAuth.AuthCodeURL(state),
		"state":    state,
	})
}

// GET /oauth2callback
//
// Exchanges the authorization code and stores the credential for the owner
// named in the state parameter. The token is never echoed back.
func (a *App) GoogleOAuth2CallbackHandler(c *gin.Context) {
	if a.OAuth == nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "google calendar not configured"})
		return
	}
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "authorization code required"})
		return
	}
	ownerID := ownerFromState(c.Query("state"))
	if ownerID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid state"})
		return
	}

	ctx := c.Request.Context()
	token, err := a.OAuth.Exchange(ctx, code)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to exchange code for token"})
		return
	}
	if err := a.Store.SaveCredential(ctx, ownerID, token); err != nil {
		fail(c, err)
		return
	}

	zap.L().Info("calendar connected", zap.String("owner_id", ownerID))
	c.JSON(http.StatusOK, gin.H{"message": "calendar connected"})
}

// ownerFromState parses "user_<ownerID>_<unix>". Owner IDs may themselves
// contain underscores, so split from both ends.
func ownerFromState(state string) string {
	if !strings.HasPrefix(state, "user_") {
		return ""
	}
	rest := state[len("user_"):]
	i := strings.LastIndexByte(rest, '_')
	if i <= 0 {
		return ""
	}
	return rest[:i]
}
