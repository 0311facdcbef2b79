package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"contact-service/internal/models"
	"contact-service/internal/services"
	"contact-service/pkg/apperrors"
)

// ContactHandler handles contact form submissions
type ContactHandler struct {
	dispatcher *services.Dispatcher
	// echoDetails includes provider error detail in responses; enabled only
	// outside production
	echoDetails bool
	log         *logrus.Entry
}

// NewContactHandler creates a new contact handler
func NewContactHandler(dispatcher *services.Dispatcher, echoDetails bool) *ContactHandler {
	return &ContactHandler{
		dispatcher:  dispatcher,
		echoDetails: echoDetails,
		log:         logrus.WithField("component", "contact_handler"),
	}
}

// Submit handles POST /api/contact. Every error class is mapped to an HTTP
// status and JSON body here; nothing propagates past this boundary.
func (h *ContactHandler) Submit(c *gin.Context) {
	var inq models.Inquiry
	if err := c.ShouldBindJSON(&inq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	err := h.dispatcher.Dispatch(c.Request.Context(), &inq)
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Email sent successfully"})
		return
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		h.log.WithError(err).Error("unclassified dispatch failure")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email. Please try again later."})
		return
	}

	switch appErr.Code {
	case apperrors.ErrCodeValidation:
		c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
	case apperrors.ErrCodeConfiguration:
		c.JSON(http.StatusInternalServerError, gin.H{"error": appErr.Message})
	default:
		body := gin.H{"error": appErr.Message}
		if h.echoDetails && appErr.Err != nil {
			body["details"] = appErr.Err.Error()
		}
		c.JSON(http.StatusInternalServerError, body)
	}
}
