package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nandanugg/geofence-tracker/module/core/domain"
)

type drawingSession interface {
	SelectMode(kind domain.GeofenceKind) error
	AddPoint(p domain.LatLng) error
	DragTo(p domain.LatLng) error
	FinishGesture() (string, error)
	CancelGesture()
	BeginEdit(id string) error
	CompleteEdit(payload domain.ShapePayload) error
	InteractionLocked() bool
}

type modeRequest struct {
	Mode string `json:"mode"`
}

type pointRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type beginEditRequest struct {
	ID string `json:"id"`
}

type completeEditRequest struct {
	Data geofenceData `json:"data"`
}

// DrawingHandler exposes the gesture protocol: the presentation layer relays
// raw draw/edit interaction events here and renders whatever snapshot the
// store broadcasts back.
type DrawingHandler struct {
	session drawingSession
}

func NewDrawingHandler(session drawingSession) *DrawingHandler {
	return &DrawingHandler{session: session}
}

func (h *DrawingHandler) Register(r *gin.RouterGroup) {
	r.POST("/drawing/mode", h.SelectMode)
	r.POST("/drawing/point", h.AddPoint)
	r.POST("/drawing/drag", h.Drag)
	r.POST("/drawing/finish", h.Finish)
	r.POST("/drawing/cancel", h.Cancel)
	r.POST("/drawing/edit", h.BeginEdit)
	r.PUT("/drawing/edit", h.CompleteEdit)
	r.GET("/drawing/state", h.State)
}

func (h *DrawingHandler) SelectMode(c *gin.Context) {
	var req modeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.session.SelectMode(domain.GeofenceKind(req.Mode)); err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DrawingHandler) AddPoint(c *gin.Context) {
	var req pointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.session.AddPoint(domain.LatLng{Lat: req.Lat, Lng: req.Lng}); err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DrawingHandler) Drag(c *gin.Context) {
	var req pointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.session.DragTo(domain.LatLng{Lat: req.Lat, Lng: req.Lng}); err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DrawingHandler) Finish(c *gin.Context) {
	id, err := h.session.FinishGesture()
	if err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *DrawingHandler) Cancel(c *gin.Context) {
	h.session.CancelGesture()
	c.Status(http.StatusNoContent)
}

func (h *DrawingHandler) BeginEdit(c *gin.Context) {
	var req beginEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.session.BeginEdit(req.ID); err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DrawingHandler) CompleteEdit(c *gin.Context) {
	var req completeEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.session.CompleteEdit(toPayload(req.Data)); err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// State reports whether background pan/zoom must be suppressed.
func (h *DrawingHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"locked": h.session.InteractionLocked()})
}
