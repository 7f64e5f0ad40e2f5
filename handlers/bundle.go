package handlers

import (
	bookingRepo "frontdesk/database/repository/booking"
	knowledgeRepo "frontdesk/database/repository/knowledge"
	tenantRepo "frontdesk/database/repository/tenant"
	"frontdesk/services/dialog"
	"frontdesk/services/session"
)

// HandlerBundle groups the handler dependencies so routes wire against one
// value.
type HandlerBundle struct {
	Orchestrator  *dialog.Orchestrator
	TenantRepo    tenantRepo.TenantRepository
	BookingRepo   bookingRepo.BookingRepository
	KnowledgeRepo knowledgeRepo.KnowledgeRepository
	SessionStore  session.Store
}
