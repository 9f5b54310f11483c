package handlers

import (
	"errors"
	"net/http"
	"time"

	"devblog/pkg/logger"
	"devblog/pkg/metrics"
	"devblog/pkg/models"
	"devblog/pkg/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const contactSubmittedKey = "contact_submitted_at"

func (a *API) SubmitContact(c *gin.Context) {
	var msg models.ContactMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		metrics.ContactSubmissions.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	receipt, err := a.contact.Submit(c.Request.Context(), msg)
	if err != nil {
		if errors.Is(err, services.ErrInvalidContact) {
			metrics.ContactSubmissions.WithLabelValues("invalid").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		metrics.ContactSubmissions.WithLabelValues("aborted").Inc()
		logger.Warnf("contact: submission aborted: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Submission interrupted"})
		return
	}

	session := sessions.Default(c)
	session.Set(contactSubmittedKey, time.Now().UnixMilli())
	if err := session.Save(); err != nil {
		logger.Errorf("contact: saving session: %v", err)
	}

	metrics.ContactSubmissions.WithLabelValues("accepted").Inc()
	c.JSON(http.StatusAccepted, gin.H{"status": "sent", "receipt": receipt})
}

// ContactStatus reports whether this session submitted the form recently.
func (a *API) ContactStatus(c *gin.Context) {
	session := sessions.Default(c)
	submitted := false
	if at, ok := session.Get(contactSubmittedKey).(int64); ok {
		since := time.Since(time.UnixMilli(at))
		submitted = since >= 0 && since < a.contactResetAfter
		if !submitted {
			session.Delete(contactSubmittedKey)
			if err := session.Save(); err != nil {
				logger.Errorf("contact: saving session: %v", err)
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"submitted": submitted})
}
