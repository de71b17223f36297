package v1

import (
	"net/http"
	"time"

	"go-portfolio-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	eventSnapshot    = "snapshot"
	eventPlaceholder = "placeholder"
	eventPing        = "ping"
)

// keepAlive keeps idle streams open through proxies.
var keepAlive = 25 * time.Second

// streamSnapshots writes each snapshot as a server-sent event until the
// client disconnects or updates closes. Sections that were never saved are
// sent as "placeholder" events, the rest as "snapshot".
func streamSnapshots(c *gin.Context, updates <-chan domain.Snapshot) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	ticker := time.NewTicker(keepAlive)
	defer ticker.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}
			event := eventSnapshot
			if snap.Placeholder {
				event = eventPlaceholder
			}
			c.SSEvent(event, snap)
			c.Writer.Flush()
		case <-ticker.C:
			c.SSEvent(eventPing, time.Now().Unix())
			c.Writer.Flush()
		}
	}
}
