package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"frontdesk/models"
	"frontdesk/services/dialog"
	"frontdesk/utils"
)

const safeApology = "I'm sorry, something went wrong on our end. Please call back in a moment."

// HandleTurn processes one utterance for the authenticated tenant.
func (hb *HandlerBundle) HandleTurn(c *gin.Context) {
	tenantID := c.GetString("tenantID")
	if tenantID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing tenant identity"})
		return
	}

	var req models.TurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if strings.TrimSpace(req.Channel) == "" {
		req.Channel = "chat"
	}

	resp, err := hb.Orchestrator.HandleTurn(c.Request.Context(), tenantID, req)
	if err != nil {
		var te *dialog.TurnError
		status := http.StatusInternalServerError
		if errors.As(err, &te) {
			switch te.Code {
			case dialog.CodeUnknownTenant:
				status = http.StatusNotFound
			case dialog.CodeMalformedSession:
				status = http.StatusBadRequest
			}
		}
		utils.GetLogger().Error("turn failed",
			zap.String("tenantId", tenantID), zap.Error(err))
		c.JSON(status, gin.H{"error": err.Error(), "reply": safeApology})
		return
	}

	if d := c.Query("debug"); d != "1" && d != "true" {
		resp.DebugTrace = nil
	}
	c.JSON(http.StatusOK, resp)
}

// ResetSession drops a session so the next turn starts fresh.
func (hb *HandlerBundle) ResetSession(c *gin.Context) {
	tenantID := c.GetString("tenantID")
	sessionID := c.Param("id")

	sess, err := hb.SessionStore.Load(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session load failed"})
		return
	}
	if sess == nil || sess.TenantID != tenantID {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	if err := hb.SessionStore.Delete(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session reset failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reset", "sessionId": sessionID})
}
