package handlers

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"frontdesk/models"
	"frontdesk/services/slotconfig"
	"frontdesk/utils"
)

// GetSlotConfig returns the resolved slot plan and which source produced it.
func (hb *HandlerBundle) GetSlotConfig(c *gin.Context) {
	tenant, ok := hb.authorizedTenant(c)
	if !ok {
		return
	}

	slots, source := slotconfig.FromTenant(tenant)
	c.JSON(http.StatusOK, gin.H{
		"slots":  slots,
		"source": source,
	})
}

// UpdateSlotConfig replaces the tenant's current slot plan. Legacy configs
// stay in place as fallbacks.
func (hb *HandlerBundle) UpdateSlotConfig(c *gin.Context) {
	tenant, ok := hb.authorizedTenant(c)
	if !ok {
		return
	}

	var slots []models.SlotDefinition
	if err := c.ShouldBindJSON(&slots); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := validateSlots(slots); err != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if err := hb.TenantRepo.UpdateSlotConfig(c.Request.Context(), tenant.ID, slots); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated", "count": len(slots)})
}

// UpsertKnowledgeSnippet adds or replaces one cheat-sheet entry.
func (hb *HandlerBundle) UpsertKnowledgeSnippet(c *gin.Context) {
	tenant, ok := hb.authorizedTenant(c)
	if !ok {
		return
	}

	var snip models.KnowledgeSnippet
	if err := c.ShouldBindJSON(&snip); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if strings.TrimSpace(snip.Answer) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "answer is required"})
		return
	}
	snip.TenantID = tenant.ID

	if err := hb.KnowledgeRepo.Upsert(c.Request.Context(), snip); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upsert failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// MintAdapterToken issues a bearer token a channel adapter presents on the
// turn endpoints. Guarded by the admin key like the other config routes.
func (hb *HandlerBundle) MintAdapterToken(c *gin.Context) {
	tenant, ok := hb.authorizedTenant(c)
	if !ok {
		return
	}

	var req struct {
		Channel    string `json:"channel"`
		TTLMinutes int    `json:"ttlMinutes"`
	}
	// An empty body mints a default chat token.
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if strings.TrimSpace(req.Channel) == "" {
		req.Channel = "chat"
	}
	ttl := time.Duration(req.TTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	token, err := utils.GenerateAdapterToken(tenant.ID, req.Channel, ttl)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"channel":   req.Channel,
		"expiresAt": time.Now().Add(ttl).UTC(),
	})
}

// authorizedTenant loads the route's tenant and checks the admin key header
// against the stored bcrypt hash.
func (hb *HandlerBundle) authorizedTenant(c *gin.Context) (*models.Tenant, bool) {
	tenant, err := hb.TenantRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tenant not found"})
		return nil, false
	}

	key := c.GetHeader("X-Admin-Key")
	if tenant.AdminKeyHash == "" || key == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "admin key required"})
		return nil, false
	}
	if err := bcrypt.CompareHashAndPassword([]byte(tenant.AdminKeyHash), []byte(key)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "admin key rejected"})
		return nil, false
	}
	return tenant, true
}

func validateSlots(slots []models.SlotDefinition) string {
	if len(slots) == 0 {
		return "at least one slot is required"
	}
	seen := make(map[string]bool, len(slots))
	for _, def := range slots {
		if strings.TrimSpace(def.SlotID) == "" {
			return "slotId is required"
		}
		if seen[def.SlotID] {
			return "duplicate slotId: " + def.SlotID
		}
		seen[def.SlotID] = true
		if strings.TrimSpace(def.Question) == "" {
			return "question is required for slot " + def.SlotID
		}
		switch def.Type {
		case models.SlotTypeName, models.SlotTypePhone, models.SlotTypeAddress,
			models.SlotTypeTime, models.SlotTypeText:
		default:
			return "unknown type for slot " + def.SlotID
		}
	}
	return ""
}
