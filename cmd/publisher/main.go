// Mock device publisher: simulates one IoT tracker wandering around the
// default map center, periodically dipping inside a ~1km circle so geofence
// crossings actually happen during a demo.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

type sampleMessage struct {
	DeviceID   string  `json:"device_id"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Speed      float64 `json:"speed"`
	Satellites int     `json:"satellites"`
	Altitude   float64 `json:"altitude"`
	Timestamp  int64   `json:"timestamp"`
}

const (
	deviceID  = "iot-tracker-01"
	centerLat = 20.5937
	centerLng = 78.9629
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <interval_seconds>\n", os.Args[0])
		os.Exit(1)
	}

	intervalSec, err := strconv.Atoi(os.Args[1])
	if err != nil || intervalSec <= 0 {
		fmt.Fprintf(os.Stderr, "error: interval must be a positive integer\n")
		os.Exit(1)
	}

	broker := "tcp://localhost:1883"
	if v := os.Getenv("MQTT_BROKER"); v != "" {
		broker = v
	}

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("geofence-mock-device")

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("mqtt connect: %v", token.Error())
	}
	defer client.Disconnect(250)

	log.Printf("connected to %s, publishing as %s every %ds...", broker, deviceID, intervalSec)

	ticker := time.NewTicker(time.Duration(intervalSec) * time.Second)
	defer ticker.Stop()

	inside := false
	for range ticker.C {
		// toggle sides of a ~1km boundary every few samples
		if rand.Float64() < 0.3 {
			inside = !inside
		}

		var lat, lng float64
		if inside {
			// within ~500m of center
			lat = centerLat + (rand.Float64()-0.5)*0.008
			lng = centerLng + (rand.Float64()-0.5)*0.008
		} else {
			// 2-5km out
			lat = centerLat + 0.02 + rand.Float64()*0.025
			lng = centerLng + 0.02 + rand.Float64()*0.025
		}

		msg := sampleMessage{
			DeviceID:   deviceID,
			Latitude:   lat,
			Longitude:  lng,
			Speed:      rand.Float64() * 60,
			Satellites: rand.Intn(12) + 3,
			Altitude:   rand.Float64() * 1000,
			Timestamp:  time.Now().Unix(),
		}

		payload, _ := json.Marshal(msg)
		topic := fmt.Sprintf("/geofence/device/%s/location", deviceID)

		token := client.Publish(topic, 1, false, payload)
		token.Wait()

		log.Printf("published to %s: %s", topic, payload)
	}
}
