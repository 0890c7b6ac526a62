package core

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/nandanugg/geofence-tracker/module/core/domain"
	"github.com/nandanugg/geofence-tracker/module/core/internal/feed"
	handler "github.com/nandanugg/geofence-tracker/module/core/internal/handler/http"
	"github.com/nandanugg/geofence-tracker/module/core/internal/handler/subscriber"
	"github.com/nandanugg/geofence-tracker/module/core/internal/repository/database/postgres"
	"github.com/nandanugg/geofence-tracker/module/core/internal/repository/publisher/rabbitmq"
	"github.com/nandanugg/geofence-tracker/module/core/service"
)

type Module struct {
	Store   *service.GeofenceStore
	Tracker *service.ContainmentTracker
	Session *service.DrawingSession

	locationSvc     *service.LocationService
	geofenceHandler *handler.GeofenceHandler
	drawingHandler  *handler.DrawingHandler
	locationHandler *handler.LocationHandler
	subscriber      *subscriber.LocationSubscriber
}

func Build(db *sql.DB, amqpConn *amqp.Connection, mqttClient mqtt.Client) (*Module, error) {
	sampleRepo := postgres.NewSampleRepo(db)
	recordRepo := postgres.NewGeofenceRecordRepo(db)

	transitionPub, err := rabbitmq.NewTransitionPublisher(amqpConn)
	if err != nil {
		return nil, fmt.Errorf("transition publisher: %w", err)
	}

	store := service.NewGeofenceStore()
	tracker := service.NewContainmentTracker(transitionPub)
	store.Subscribe(tracker.OnGeofenceSetChanged)

	session := service.NewDrawingSession(store)
	locationSvc := service.NewLocationService(sampleRepo)
	recordSvc := service.NewRecordService(store, recordRepo)

	return &Module{
		Store:           store,
		Tracker:         tracker,
		Session:         session,
		locationSvc:     locationSvc,
		geofenceHandler: handler.NewGeofenceHandler(store, recordSvc),
		drawingHandler:  handler.NewDrawingHandler(session),
		locationHandler: handler.NewLocationHandler(locationSvc, tracker),
		subscriber:      subscriber.NewLocationSubscriber(mqttClient, tracker, locationSvc),
	}, nil
}

func (m *Module) RegisterRoutes(r *gin.RouterGroup) {
	m.geofenceHandler.Register(r)
	m.drawingHandler.Register(r)
	m.locationHandler.Register(r)
}

func (m *Module) StartSubscribers() error {
	return m.subscriber.Start()
}

// NewFeedPoller wires an external latest-location feed into the tracker and
// the sample history.
func (m *Module) NewFeedPoller(url string, interval time.Duration) *feed.Poller {
	return feed.NewPoller(url, interval, func(ctx context.Context, sample domain.PositionSample) {
		m.Tracker.OnSample(ctx, sample)
		if err := m.locationSvc.SaveSample(ctx, &sample); err != nil {
			log.Printf("save polled sample: %v", err)
		}
	})
}
