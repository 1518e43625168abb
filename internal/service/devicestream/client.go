package devicestream

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"RunSight/internal/domain/models"
	drepo "RunSight/internal/domain/repository"

	"github.com/gorilla/websocket"
)

// Client implements an ActivityStream backed by a device gateway WebSocket.
type Client struct {
	apiKey         string
	websocketURL   string
	channels       []string
	reconnectDelay time.Duration
	pingInterval   time.Duration

	conn      *websocket.Conn
	connected bool
}

// New creates a new device gateway ActivityStream.
func New(apiKey, websocketURL string, channels []string, reconnectDelay, pingInterval time.Duration) drepo.ActivityStream {
	return &Client{
		apiKey:         apiKey,
		websocketURL:   websocketURL,
		channels:       channels,
		reconnectDelay: reconnectDelay,
		pingInterval:   pingInterval,
	}
}

// Connect establishes the WebSocket connection.
func (c *Client) Connect(ctx context.Context) error {
	u := fmt.Sprintf("%s?token=%s", c.websocketURL, c.apiKey)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return fmt.Errorf("devicestream connect: %w", err)
	}
	c.conn = conn
	c.connected = true
	log.Printf("devicestream: connected")
	return nil
}

// Subscribe subscribes to configured channels.
func (c *Client) Subscribe(ctx context.Context) error {
	if c.conn == nil || !c.connected {
		return fmt.Errorf("devicestream not connected")
	}
	for _, ch := range c.channels {
		msg := map[string]string{"type": "subscribe", "channel": ch}
		if err := c.conn.WriteJSON(msg); err != nil {
			return fmt.Errorf("subscribe %s: %w", ch, err)
		}
		log.Printf("devicestream: subscribed %s", ch)
	}
	return nil
}

type wsActivity struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	DistanceKm    float64 `json:"distance_km"`
	DurationMin   float64 `json:"duration_min"`
	AvgPaceMinKm  float64 `json:"avg_pace_min_km"`
	AvgHeartRate  float64 `json:"avg_heart_rate"`
	TemperatureC  float64 `json:"temperature_c"`
	AltitudeM     float64 `json:"altitude_m"`
	ElevationGain float64 `json:"elevation_gain"`
	StartedAt     int64   `json:"started_at"` // ms
	Completed     bool    `json:"completed"`
}

type wsMessage struct {
	Type string       `json:"type"`
	Data []wsActivity `json:"data"`
}

// Read streams ActivityRecord events and errors.
func (c *Client) Read(ctx context.Context) (<-chan *models.ActivityRecord, <-chan error) {
	activities := make(chan *models.ActivityRecord, 1024)
	errs := make(chan error, 1)

	// ping loop
	go func() {
		ticker := time.NewTicker(c.pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if c.conn != nil {
					_ = c.conn.WriteMessage(websocket.PingMessage, nil)
				}
			}
		}
	}()

	// read loop
	go func() {
		defer close(activities)
		defer close(errs)
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if c.conn == nil {
					errs <- fmt.Errorf("devicestream conn nil")
					return
				}
				_, b, err := c.conn.ReadMessage()
				if err != nil {
					errs <- fmt.Errorf("devicestream read: %w", err)
					return
				}
				var m wsMessage
				if err := json.Unmarshal(b, &m); err != nil {
					// ignore non-activity frames
					continue
				}
				if m.Type != "activity" {
					continue
				}
				for _, d := range m.Data {
					sec := d.StartedAt / 1000
					rec := &models.ActivityRecord{
						ID:            d.ID,
						UserID:        d.UserID,
						DistanceKm:    d.DistanceKm,
						DurationMin:   d.DurationMin,
						AvgPaceMinKm:  d.AvgPaceMinKm,
						AvgHeartRate:  d.AvgHeartRate,
						TemperatureC:  d.TemperatureC,
						AltitudeM:     d.AltitudeM,
						ElevationGain: d.ElevationGain,
						StartedAt:     time.Unix(sec, 0).UTC(),
						Completed:     d.Completed,
					}
					select {
					case activities <- rec:
					default:
						// drop on backpressure
					}
				}
			}
		}
	}()

	return activities, errs
}

// Reconnect closes and reconnects.
func (c *Client) Reconnect(ctx context.Context) error {
	_ = c.Close()
	time.Sleep(c.reconnectDelay)
	if err := c.Connect(ctx); err != nil {
		return err
	}
	return c.Subscribe(ctx)
}

// Close closes the WS connection.
func (c *Client) Close() error {
	c.connected = false
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// IsConnected indicates status.
func (c *Client) IsConnected() bool { return c.connected }
