package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetBooking looks up a finalized booking by its case id.
func (hb *HandlerBundle) GetBooking(c *gin.Context) {
	tenantID := c.GetString("tenantID")

	record, err := hb.BookingRepo.GetByCaseID(c.Request.Context(), tenantID, c.Param("caseId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	c.JSON(http.StatusOK, record)
}

// ListBookings returns the tenant's recent bookings, newest first.
func (hb *HandlerBundle) ListBookings(c *gin.Context) {
	tenantID := c.GetString("tenantID")

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	records, err := hb.BookingRepo.ListByTenant(c.Request.Context(), tenantID, int64(limit))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": records, "count": len(records)})
}
