package subscriber

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/nandanugg/geofence-tracker/module/core/domain"
)

const topicPattern = "/geofence/device/+/location"

type sampleTracker interface {
	OnSample(ctx context.Context, sample domain.PositionSample)
}

type locationService interface {
	SaveSample(ctx context.Context, sample *domain.PositionSample) error
}

type sampleMessage struct {
	DeviceID   string  `json:"device_id"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Speed      float64 `json:"speed"`
	Satellites int     `json:"satellites"`
	Altitude   float64 `json:"altitude"`
	Timestamp  int64   `json:"timestamp"`
}

// LocationSubscriber ingests device samples over MQTT as an alternative to
// the HTTP ingest endpoint. Messages arrive one at a time per subscription,
// so samples reach the tracker in arrival order.
type LocationSubscriber struct {
	client      mqtt.Client
	tracker     sampleTracker
	locationSvc locationService
}

func NewLocationSubscriber(client mqtt.Client, tracker sampleTracker, locationSvc locationService) *LocationSubscriber {
	return &LocationSubscriber{
		client:      client,
		tracker:     tracker,
		locationSvc: locationSvc,
	}
}

func (s *LocationSubscriber) Start() error {
	token := s.client.Subscribe(topicPattern, 1, s.handleMessage)
	token.Wait()
	return token.Error()
}

func (s *LocationSubscriber) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	var raw sampleMessage
	if err := json.Unmarshal(msg.Payload(), &raw); err != nil {
		log.Printf("invalid sample message: %v", err)
		return
	}

	if err := validateSampleMessage(&raw); err != nil {
		log.Printf("validation error: %v", err)
		return
	}

	sample := domain.PositionSample{
		Lat:        raw.Latitude,
		Lon:        raw.Longitude,
		Speed:      raw.Speed,
		Satellites: raw.Satellites,
		Altitude:   raw.Altitude,
		Timestamp:  time.Unix(raw.Timestamp, 0),
	}

	ctx := context.Background()

	s.tracker.OnSample(ctx, sample)

	if err := s.locationSvc.SaveSample(ctx, &sample); err != nil {
		log.Printf("save sample error: %v", err)
	}
}

func validateSampleMessage(msg *sampleMessage) error {
	if msg.DeviceID == "" {
		return fmt.Errorf("device_id: required")
	}
	if msg.Latitude < -90 || msg.Latitude > 90 {
		return fmt.Errorf("latitude: must be between -90 and 90")
	}
	if msg.Longitude < -180 || msg.Longitude > 180 {
		return fmt.Errorf("longitude: must be between -180 and 180")
	}
	if msg.Timestamp <= 0 {
		return fmt.Errorf("timestamp: must be positive")
	}
	return nil
}
