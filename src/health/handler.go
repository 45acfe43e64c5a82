package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler reports dependency status from non-blocking probes. It never
// attempts a connection itself.
type Handler struct {
	ServiceName   string
	DatabaseProbe func() bool
	QueueProbe    func() bool
}

func NewHandler(serviceName string, databaseProbe, queueProbe func() bool) *Handler {
	return &Handler{
		ServiceName:   serviceName,
		DatabaseProbe: databaseProbe,
		QueueProbe:    queueProbe,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"service":  h.ServiceName,
		"database": probeStatus(h.DatabaseProbe),
		"rabbitmq": probeStatus(h.QueueProbe),
	})
}

func probeStatus(probe func() bool) string {
	if probe != nil && probe() {
		return "connected"
	}
	return "disconnected"
}
