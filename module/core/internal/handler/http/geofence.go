package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nandanugg/geofence-tracker/module/core/domain"
)

type geofenceStore interface {
	Create(kind domain.GeofenceKind, payload domain.ShapePayload) (string, error)
	Update(id string, payload domain.ShapePayload) error
	Delete(id string) error
	ClearAll()
	Highlight(id string) error
	List() []domain.Geofence
}

type recordService interface {
	SaveGeofence(ctx context.Context, id string) error
	ListSaved(ctx context.Context) ([]domain.Geofence, error)
	DeleteSaved(ctx context.Context, id string) error
}

type geofenceData struct {
	Center   *domain.LatLng  `json:"center,omitempty"`
	Radius   *float64        `json:"radius,omitempty"`
	Vertices []domain.LatLng `json:"vertices,omitempty"`
}

type geofenceRequest struct {
	Type string       `json:"type"`
	Data geofenceData `json:"data"`
}

type geofenceResponse struct {
	Type        string       `json:"type"`
	ID          string       `json:"id"`
	Highlighted bool         `json:"highlighted"`
	Data        geofenceData `json:"data"`
}

type highlightRequest struct {
	ID string `json:"id"`
}

type GeofenceHandler struct {
	store   geofenceStore
	records recordService
}

func NewGeofenceHandler(store geofenceStore, records recordService) *GeofenceHandler {
	return &GeofenceHandler{store: store, records: records}
}

func (h *GeofenceHandler) Register(r *gin.RouterGroup) {
	r.GET("/geofences", h.List)
	r.POST("/geofences", h.Create)
	r.PUT("/geofences/:id", h.Update)
	r.DELETE("/geofences/:id", h.Delete)
	r.DELETE("/geofences", h.ClearAll)
	r.PUT("/highlight", h.Highlight)
	r.POST("/geofence-records/:id", h.SaveRecord)
	r.GET("/geofence-records", h.ListRecords)
	r.DELETE("/geofence-records/:id", h.DeleteRecord)
}

func (h *GeofenceHandler) List(c *gin.Context) {
	fences := h.store.List()
	results := make([]geofenceResponse, len(fences))
	for i := range fences {
		results[i] = toGeofenceResponse(&fences[i])
	}
	c.JSON(http.StatusOK, results)
}

func (h *GeofenceHandler) Create(c *gin.Context) {
	var req geofenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id, err := h.store.Create(domain.GeofenceKind(req.Type), toPayload(req.Data))
	if err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *GeofenceHandler) Update(c *gin.Context) {
	var req geofenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.store.Update(c.Param("id"), toPayload(req.Data)); err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *GeofenceHandler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Param("id")); err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GeofenceHandler) ClearAll(c *gin.Context) {
	h.store.ClearAll()
	c.Status(http.StatusNoContent)
}

// Highlight sets the highlighted geofence; an empty id clears it.
func (h *GeofenceHandler) Highlight(c *gin.Context) {
	var req highlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.store.Highlight(req.ID); err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GeofenceHandler) SaveRecord(c *gin.Context) {
	if err := h.records.SaveGeofence(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": c.Param("id")})
}

func (h *GeofenceHandler) ListRecords(c *gin.Context) {
	fences, err := h.records.ListSaved(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch saved geofences"})
		return
	}

	results := make([]geofenceResponse, len(fences))
	for i := range fences {
		results[i] = toGeofenceResponse(&fences[i])
	}
	c.JSON(http.StatusOK, results)
}

func (h *GeofenceHandler) DeleteRecord(c *gin.Context) {
	if err := h.records.DeleteSaved(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func toPayload(data geofenceData) domain.ShapePayload {
	var p domain.ShapePayload
	if data.Center != nil {
		p.Center = *data.Center
	}
	if data.Radius != nil {
		p.Radius = *data.Radius
	}
	p.Vertices = data.Vertices
	return p
}

func toGeofenceResponse(gf *domain.Geofence) geofenceResponse {
	resp := geofenceResponse{
		Type:        string(gf.Kind),
		ID:          gf.ID,
		Highlighted: gf.Highlighted,
	}
	if gf.Kind == domain.KindCircle {
		center := gf.Center
		radius := gf.Radius
		resp.Data = geofenceData{Center: &center, Radius: &radius}
	} else {
		resp.Data = geofenceData{Vertices: gf.Vertices}
	}
	return resp
}
