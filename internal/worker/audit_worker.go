package worker

import (
	"github.com/examhub/exam-service/internal/service"
)

// StartAuditWorker subscribes the audit log to auth events.
func StartAuditWorker(auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
}
