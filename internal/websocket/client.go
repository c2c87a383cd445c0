// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package websocket

import (
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/tomtom215/spawnwatch/internal/logging"
	"github.com/tomtom215/spawnwatch/internal/metrics"
	"github.com/tomtom215/spawnwatch/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024 // map pages only send pings
	sendBuffer     = 256
)

var clientIDCounter atomic.Uint64

// Client is one map page connected to the hub.
type Client struct {
	id   uint64
	hub  *Hub
	conn *websocket.Conn
	send chan Message
}

// NewClient creates a client with a process-unique, increasing ID.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		id:   clientIDCounter.Add(1),
		hub:  hub,
		conn: conn,
		send: make(chan Message, sendBuffer),
	}
}

// ID returns the client's identifier.
func (c *Client) ID() uint64 {
	return c.id
}

// readPump answers pings until the page goes away.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister <- c
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logging.Error().Err(err).Uint64("client", c.id).Msg("Failed to set read deadline")
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.Warn().Err(err).Uint64("client", c.id).Msg("Map client closed unexpectedly")
				metrics.WSErrors.WithLabelValues("unexpected_close").Inc()
			}
			return
		}

		var msg Message
		if json.Unmarshal(raw, &msg) != nil || msg.Type != MessageTypePing {
			continue
		}
		select {
		case c.send <- Message{Type: MessageTypePong}:
		default:
		}
	}
}

// writePump delivers queued messages. A page re-queries raw_data on any
// update, so entities_updated notices already waiting in the buffer are
// folded into one per kind before writing.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case first, ok := <-c.send:
			if !ok {
				_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			for _, msg := range coalesce(first, c.send) {
				if err := c.write(msg); err != nil {
					logging.Debug().Err(err).Uint64("client", c.id).Msg("Dropping map client")
					metrics.WSErrors.WithLabelValues("write").Inc()
					return
				}
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) write(msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// coalesce drains what is already buffered in queue after first. Entity
// notices of the same kind collapse into the latest one with counts summed.
// Everything else keeps its order. The channel is never waited on.
func coalesce(first Message, queue <-chan Message) []Message {
	out := []Message{first}
	byKind := map[models.Kind]int{}
	track := func(i int) {
		if d, ok := out[i].Data.(EntitiesUpdatedData); ok && out[i].Type == MessageTypeEntitiesUpdated {
			byKind[d.Kind] = i
		}
	}
	track(0)

	for {
		select {
		case msg, ok := <-queue:
			if !ok {
				return out
			}
			d, isEntity := msg.Data.(EntitiesUpdatedData)
			if isEntity && msg.Type == MessageTypeEntitiesUpdated {
				if i, seen := byKind[d.Kind]; seen {
					prev := out[i].Data.(EntitiesUpdatedData)
					d.Count += prev.Count
					out[i] = Message{Type: MessageTypeEntitiesUpdated, Data: d}
					continue
				}
			}
			out = append(out, msg)
			track(len(out) - 1)
		default:
			return out
		}
	}
}

// Start runs the read and write pumps.
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}
