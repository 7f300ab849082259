package influxc

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"
)

// DefaultStreamPath is the WebSocket streaming endpoint Chronicle exposes.
const DefaultStreamPath = "/api/v1/stream"

// StreamPoint is a point delivered over a streaming subscription. Field
// names match the server's wire encoding.
type StreamPoint struct {
	Metric    string
	Tags      map[string]string
	Value     float64
	Timestamp int64
}

// StreamMessage is the JSON frame format of the streaming protocol, shared
// with the server side.
type StreamMessage struct {
	Type   string            `json:"type"`
	Metric string            `json:"metric,omitempty"`
	Tags   map[string]string `json:"tags,omitempty"`
	Point  *StreamPoint      `json:"point,omitempty"`
	SubID  string            `json:"sub_id,omitempty"`
	Error  string            `json:"error,omitempty"`
}

// StreamSubscription is an active subscription on a stream connection.
type StreamSubscription struct {
	ID     string
	Metric string
	Tags   map[string]string
	ch     chan StreamPoint
}

// C returns the channel delivering subscribed points. It is closed when
// the subscription ends or the connection closes.
func (s *StreamSubscription) C() <-chan StreamPoint { return s.ch }

// StreamClient subscribes to real-time points over a WebSocket connection.
type StreamClient struct {
	conn       *websocket.Conn
	bufferSize int

	writeMu sync.Mutex // serializes frames to the connection
	reqMu   sync.Mutex // serializes subscribe/unsubscribe round trips
	acks    chan StreamMessage

	mu     sync.Mutex
	subs   map[string]*StreamSubscription
	closed bool
	done   chan struct{}
}

// DialStream connects to the server's streaming endpoint. An empty path
// selects DefaultStreamPath.
func DialStream(ctx context.Context, server Server, path string) (*StreamClient, error) {
	if path == "" {
		path = DefaultStreamPath
	}
	scheme := "ws"
	if server.SSL {
		scheme = "wss"
	}
	u := fmt.Sprintf("%s://%s%s", scheme,
		net.JoinHostPort(server.Host, strconv.Itoa(server.Port)), path)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return nil, fmt.Errorf("dial stream %s: %w", u, err)
	}

	s := &StreamClient{
		conn:       conn,
		bufferSize: 1000,
		acks:       make(chan StreamMessage, 1),
		subs:       make(map[string]*StreamSubscription),
		done:       make(chan struct{}),
	}
	go s.readLoop()
	return s, nil
}

// Subscribe registers interest in a metric pattern and returns the
// subscription delivering matching points.
func (s *StreamClient) Subscribe(ctx context.Context, metric string, tags map[string]string) (*StreamSubscription, error) {
	ack, err := s.roundTrip(ctx, StreamMessage{Type: "subscribe", Metric: metric, Tags: tags})
	if err != nil {
		return nil, err
	}
	if ack.Type != "subscribed" {
		return nil, newServerError("subscribe rejected: "+ack.Error, 0)
	}

	sub := &StreamSubscription{
		ID:     ack.SubID,
		Metric: metric,
		Tags:   tags,
		ch:     make(chan StreamPoint, s.bufferSize),
	}
	s.mu.Lock()
	s.subs[sub.ID] = sub
	s.mu.Unlock()
	return sub, nil
}

// Unsubscribe ends a subscription and closes its channel.
func (s *StreamClient) Unsubscribe(ctx context.Context, sub *StreamSubscription) error {
	ack, err := s.roundTrip(ctx, StreamMessage{Type: "unsubscribe", SubID: sub.ID})
	if err != nil {
		return err
	}
	if ack.Type != "unsubscribed" {
		return newServerError("unsubscribe rejected: "+ack.Error, 0)
	}
	s.dropSub(sub.ID)
	return nil
}

// Close tears down the connection and closes all subscription channels.
func (s *StreamClient) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.done)
	s.mu.Unlock()
	return s.conn.Close()
}

// roundTrip sends a command frame and waits for its acknowledgment.
func (s *StreamClient) roundTrip(ctx context.Context, msg StreamMessage) (StreamMessage, error) {
	s.reqMu.Lock()
	defer s.reqMu.Unlock()

	if err := s.writeMessage(msg); err != nil {
		return StreamMessage{}, fmt.Errorf("stream send: %w", err)
	}
	select {
	case ack, ok := <-s.acks:
		if !ok {
			return StreamMessage{}, ErrClosed
		}
		return ack, nil
	case <-s.done:
		return StreamMessage{}, ErrClosed
	case <-ctx.Done():
		return StreamMessage{}, ctx.Err()
	}
}

func (s *StreamClient) writeMessage(msg StreamMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

func (s *StreamClient) readLoop() {
	// A dead connection must fail pending and future round trips, not
	// just point delivery; roundTrip treats a closed acks channel as
	// ErrClosed.
	defer close(s.acks)
	defer s.closeSubs()
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg StreamMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "point":
			if msg.Point == nil {
				continue
			}
			s.mu.Lock()
			sub := s.subs[msg.SubID]
			s.mu.Unlock()
			if sub == nil {
				continue
			}
			// Slow consumers drop points rather than stalling the
			// connection.
			select {
			case sub.ch <- *msg.Point:
			default:
			}
		case "subscribed", "unsubscribed", "error":
			select {
			case s.acks <- msg:
			case <-s.done:
				return
			}
		}
	}
}

func (s *StreamClient) dropSub(id string) {
	s.mu.Lock()
	sub, ok := s.subs[id]
	if ok {
		delete(s.subs, id)
	}
	s.mu.Unlock()
	if ok {
		close(sub.ch)
	}
}

func (s *StreamClient) closeSubs() {
	s.mu.Lock()
	subs := s.subs
	s.subs = make(map[string]*StreamSubscription)
	s.mu.Unlock()
	for _, sub := range subs {
		close(sub.ch)
	}
}
