package http

import (
	"context"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nandanugg/geofence-tracker/module/core/domain"
)

type locationService interface {
	SaveSample(ctx context.Context, sample *domain.PositionSample) error
	GetLatest(ctx context.Context) (*domain.PositionSample, error)
	GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.PositionSample, error)
}

type sampleTracker interface {
	OnSample(ctx context.Context, sample domain.PositionSample)
}

type ingestRequest struct {
	DeviceID  string   `json:"deviceId"`
	Lat       *float64 `json:"lat"`
	Lon       *float64 `json:"lon"`
	SpeedKmph float64  `json:"speed_kmph"`
	Sats      int      `json:"sats"`
	Alt       float64  `json:"alt"`
}

type sampleResponse struct {
	Lat        float64   `json:"lat"`
	Lon        float64   `json:"lon"`
	Speed      float64   `json:"speed"`
	Satellites int       `json:"satellites"`
	Altitude   float64   `json:"altitude"`
	Timestamp  time.Time `json:"timestamp"`
}

// LocationHandler ingests device reports and serves the latest sample to
// feed consumers. The latest sample is held in memory; the database is only
// the history collaborator.
type LocationHandler struct {
	locationSvc locationService
	tracker     sampleTracker

	mu     sync.Mutex
	latest *domain.PositionSample
}

func NewLocationHandler(locationSvc locationService, tracker sampleTracker) *LocationHandler {
	return &LocationHandler{locationSvc: locationSvc, tracker: tracker}
}

func (h *LocationHandler) Register(r *gin.RouterGroup) {
	r.POST("/location", h.Ingest)
	r.GET("/latest-location", h.GetLatest)
	r.GET("/location/history", h.GetHistory)
}

// Ingest accepts a report from the tracked device, runs containment
// evaluation and appends to history. The server assigns the timestamp.
func (h *LocationHandler) Ingest(c *gin.Context) {
	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	if req.DeviceID == "" || req.Lat == nil || req.Lon == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Missing required fields: deviceId, lat, lon",
		})
		return
	}
	if *req.Lat < -90 || *req.Lat > 90 || *req.Lon < -180 || *req.Lon > 180 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "coordinates out of range"})
		return
	}

	sample := domain.PositionSample{
		Lat:        *req.Lat,
		Lon:        *req.Lon,
		Speed:      req.SpeedKmph,
		Satellites: req.Sats,
		Altitude:   req.Alt,
		Timestamp:  time.Now(),
	}

	h.mu.Lock()
	h.latest = &sample
	h.mu.Unlock()

	h.tracker.OnSample(c.Request.Context(), sample)

	// History persistence is best effort; a storage error never fails the
	// ingest or the containment evaluation that already ran.
	if err := h.locationSvc.SaveSample(c.Request.Context(), &sample); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Location data received, history write failed",
			"data":    toSampleResponse(&sample),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Location data received successfully",
		"data":    toSampleResponse(&sample),
	})
}

// GetLatest returns the most recent sample. With no data yet it falls back to
// history, then to a mock sample near the default map center so the feed
// always has something to render.
func (h *LocationHandler) GetLatest(c *gin.Context) {
	h.mu.Lock()
	latest := h.latest
	h.mu.Unlock()

	if latest == nil {
		if s, err := h.locationSvc.GetLatest(c.Request.Context()); err == nil {
			latest = s
		}
	}
	if latest == nil {
		c.JSON(http.StatusOK, mockSample())
		return
	}

	c.JSON(http.StatusOK, toSampleResponse(latest))
}

func (h *LocationHandler) GetHistory(c *gin.Context) {
	start, err := strconv.ParseInt(c.Query("start"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start parameter"})
		return
	}

	end, err := strconv.ParseInt(c.Query("end"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end parameter"})
		return
	}

	query := &domain.HistoryQuery{
		Start: time.Unix(start, 0),
		End:   time.Unix(end, 0),
	}

	samples, err := h.locationSvc.GetHistory(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch history"})
		return
	}

	results := make([]sampleResponse, len(samples))
	for i := range samples {
		results[i] = toSampleResponse(&samples[i])
	}
	c.JSON(http.StatusOK, results)
}

func toSampleResponse(s *domain.PositionSample) sampleResponse {
	return sampleResponse{
		Lat:        s.Lat,
		Lon:        s.Lon,
		Speed:      s.Speed,
		Satellites: s.Satellites,
		Altitude:   s.Altitude,
		Timestamp:  s.Timestamp,
	}
}

// mockSample mirrors the demo fallback of the original feed: a random point
// near (20.5937, 78.9629).
func mockSample() sampleResponse {
	return sampleResponse{
		Lat:        20.5937 + (rand.Float64()-0.5)*2,
		Lon:        78.9629 + (rand.Float64()-0.5)*2,
		Speed:      rand.Float64() * 60,
		Satellites: rand.Intn(12) + 3,
		Altitude:   rand.Float64() * 1000,
		Timestamp:  time.Now(),
	}
}
