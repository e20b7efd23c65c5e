package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"rentaid-waitlist/pkg/leadform"
	"rentaid-waitlist/pkg/metrics"
	"rentaid-waitlist/pkg/middleware"
	"rentaid-waitlist/pkg/models"
	"rentaid-waitlist/pkg/sessions"
	"rentaid-waitlist/pkg/stories"
)

const (
	SessionCookie = "rentaid_session"
	VisitorCookie = "rentaid_visitor"

	visitorCookieMaxAge = 365 * 24 * 60 * 60
)

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	registry     *sessions.Registry
	submitter    *leadform.Submitter
	stories      *stories.Repository
	metrics      *metrics.SubmissionMetrics
	log          *zap.Logger
	cookieSecure bool
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	registry *sessions.Registry,
	submitter *leadform.Submitter,
	storyRepo *stories.Repository,
	m *metrics.SubmissionMetrics,
	log *zap.Logger,
	cookieSecure bool,
) *Handlers {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handlers{
		registry:     registry,
		submitter:    submitter,
		stories:      storyRepo,
		metrics:      m,
		log:          log,
		cookieSecure: cookieSecure,
	}
}

// Register mounts every route on router. submitLimit guards the submit endpoints.
func (h *Handlers) Register(router gin.IRouter, submitLimit gin.HandlerFunc) {
	router.GET("/health", h.HealthCheck)

	api := router.Group("/api")
	api.GET("/form/options", h.FormOptions)
	api.GET("/stories/:variant", h.Stories)
	api.POST("/leads/:variant", submitLimit, h.HandleLeadSubmission)

	session := api.Group("/session")
	session.GET("", h.GetSession)
	session.PUT("/user-type", h.SelectUserType)
	session.POST("/form", h.OpenForm)
	session.DELETE("/form", h.DismissForm)
	session.PATCH("/form/:variant", h.UpdateField)
	session.POST("/form/submit", submitLimit, h.SubmitForm)
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

func (h *Handlers) FormOptions(c *gin.Context) {
	c.JSON(http.StatusOK, models.DefaultFormOptions)
}

// GetSession returns the visitor's form session, creating one if needed.
// A valid showForm query opens that form once and redirects to the bare path.
func (h *Handlers) GetSession(c *gin.Context) {
	session := h.currentSession(c)

	if raw, present := c.GetQuery("showForm"); present {
		if variant, ok := models.ParseVariant(raw); ok {
			session.Open(variant)
			c.Redirect(http.StatusSeeOther, c.Request.URL.Path)
			return
		}
	}

	c.JSON(http.StatusOK, session.Snapshot())
}

type userTypeRequest struct {
	UserType string `json:"userType" binding:"required"`
}

func (h *Handlers) SelectUserType(c *gin.Context) {
	var req userTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format"})
		return
	}
	variant, ok := models.ParseVariant(req.UserType)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userType must be tenant or landlord"})
		return
	}

	session := h.currentSession(c)
	if err := h.registry.SelectVariant(c.Request.Context(), session.ID(), variant); err != nil {
		h.log.Warn("Error selecting user type", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to update session"})
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

type openFormRequest struct {
	Variant string `json:"variant" binding:"required"`
}

func (h *Handlers) OpenForm(c *gin.Context) {
	var req openFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format"})
		return
	}
	variant, ok := models.ParseVariant(req.Variant)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "variant must be tenant or landlord"})
		return
	}

	session := h.currentSession(c)
	session.Open(variant)
	c.JSON(http.StatusOK, session.Snapshot())
}

// DismissForm closes the form, cancelling any pending reset and discarding input
func (h *Handlers) DismissForm(c *gin.Context) {
	session := h.currentSession(c)
	session.Dismiss()
	c.JSON(http.StatusOK, session.Snapshot())
}

type fieldUpdate struct {
	Field string      `json:"field" binding:"required"`
	Value interface{} `json:"value"`
}

func (h *Handlers) UpdateField(c *gin.Context) {
	variant, ok := models.ParseVariant(c.Param("variant"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown form"})
		return
	}
	var req fieldUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format"})
		return
	}

	session := h.currentSession(c)
	if err := session.SetField(variant, req.Field, req.Value); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

// SubmitForm submits the active form of the session
func (h *Handlers) SubmitForm(c *gin.Context) {
	session := h.currentSession(c)
	result := session.Submit(c.Request.Context())

	variant := result.Variant
	if variant == "" {
		variant = session.Snapshot().Form.Active
	}
	h.metrics.ObserveSubmission(string(variant), leadform.Kind(result.Err))

	c.JSON(StatusFor(result.Err), gin.H{
		"status":  statusText(result.Err),
		"kind":    leadform.Kind(result.Err),
		"message": result.Message,
		"id":      result.ID,
		"session": session.Snapshot(),
	})
}

// Processes a one-shot lead submission posted directly by an external form
func (h *Handlers) HandleLeadSubmission(c *gin.Context) {
	variant, ok := models.ParseVariant(c.Param("variant"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown form"})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.log.Warn("Error reading request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error reading request"})
		return
	}

	form, err := decodeLeadForm(variant, body)
	if err != nil {
		h.log.Info("Error parsing JSON",
			zap.String("request_id", middleware.RequestIDFromContext(c)),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format"})
		return
	}

	id, err := h.submitter.Submit(c.Request.Context(), form)
	h.metrics.ObserveSubmission(string(variant), leadform.Kind(err))

	message := leadform.SuccessMessage(variant)
	if err != nil {
		message = leadform.UserMessage(err)
	}
	c.JSON(StatusFor(err), gin.H{
		"status":  statusText(err),
		"kind":    leadform.Kind(err),
		"message": message,
		"id":      id,
	})
}

func (h *Handlers) Stories(c *gin.Context) {
	variant, ok := models.ParseVariant(c.Param("variant"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown user type"})
		return
	}

	items := h.stories.For(variant)
	if items == nil {
		items = []stories.Testimonial{}
	}
	first, second := stories.SplitRows(items)
	c.JSON(http.StatusOK, gin.H{
		"variant":      variant,
		"testimonials": items,
		"rows":         [][]stories.Testimonial{first, second},
	})
}

// StatusFor maps a submission outcome to an HTTP status
func StatusFor(err error) int {
	var storeErr *leadform.StoreError
	switch {
	case err == nil:
		return http.StatusOK
	case leadform.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, leadform.ErrSubmissionInFlight), errors.Is(err, leadform.ErrDuplicatePhone):
		return http.StatusConflict
	case errors.Is(err, leadform.ErrInvalidData):
		return http.StatusUnprocessableEntity
	case errors.Is(err, leadform.ErrUnreachable):
		return http.StatusServiceUnavailable
	case errors.As(err, &storeErr):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func statusText(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func decodeLeadForm(variant models.Variant, body []byte) (models.LeadForm, error) {
	if variant == models.VariantLandlord {
		var form models.LandlordLeadForm
		if err := json.Unmarshal(body, &form); err != nil {
			return nil, err
		}
		return form, nil
	}
	var form models.TenantLeadForm
	if err := json.Unmarshal(body, &form); err != nil {
		return nil, err
	}
	return form, nil
}

// currentSession resolves the cookie-bound session, creating the visitor id
// and the session when either is missing or expired
func (h *Handlers) currentSession(c *gin.Context) *leadform.Session {
	visitorID, err := c.Cookie(VisitorCookie)
	if err != nil || visitorID == "" {
		visitorID = uuid.NewString()
		h.setCookie(c, VisitorCookie, visitorID, visitorCookieMaxAge)
	}

	if id, err := c.Cookie(SessionCookie); err == nil && id != "" {
		if session, err := h.registry.Get(id); err == nil {
			return session
		}
	}

	session := h.registry.Create(c.Request.Context(), visitorID)
	h.setCookie(c, SessionCookie, session.ID(), 0)
	return session
}

func (h *Handlers) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", h.cookieSecure, true)
}
