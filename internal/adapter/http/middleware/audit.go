package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"shadowpay/internal/core/domain"
	"shadowpay/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditLog records successful flow session openings and payment attempts.
// Payment, kiosk and wallet changes are audited by the services themselves.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Only audit successful write operations (status 2xx)
		if c.Writer.Status() < 200 || c.Writer.Status() >= 300 {
			return
		}
		if c.Request.Method != http.MethodPost {
			return
		}

		action, resourceType := mapRouteToAction(c.FullPath(), c.Request.Method)
		if action == "" {
			return
		}

		details, _ := json.Marshal(map[string]interface{}{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": c.Writer.Status(),
		})

		resourceID := c.Param("session_id")
		if resourceID == "" {
			resourceID = c.Param("id")
		}

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ID:           uuid.New(),
			Action:       action,
			ResourceType: resourceType,
			ResourceID:   resourceID,
			IPAddress:    c.ClientIP(),
			Details:      string(details),
			CreatedAt:    time.Now(),
		})
	}
}

func mapRouteToAction(route, method string) (domain.AuditAction, string) {
	if method != http.MethodPost {
		return "", ""
	}
	switch route {
	case "/api/v1/create/sessions":
		return domain.AuditActionMerchantOpen, "merchant_session"
	case "/api/v1/pay/:id/sessions":
		return domain.AuditActionCheckoutOpen, "payment"
	case "/api/v1/pay/:id/sessions/:session_id/pay":
		return domain.AuditActionPaymentAttempt, "checkout_session"
	case "/api/v1/scan/sessions":
		return domain.AuditActionScanOpen, "scan_session"
	}
	return "", ""
}
