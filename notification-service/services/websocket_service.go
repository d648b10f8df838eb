package services

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"gente-backend/shared/database/models/notification"
)

// WebSocketManager handles all WebSocket connections
type WebSocketManager struct {
	clients    map[string]*websocket.Conn // userID -> connection
	mutex      sync.RWMutex
	upgrader   websocket.Upgrader
	register   chan *ClientConnection
	unregister chan *ClientConnection
	broadcast  chan *notification.WebSocketMessage
}

// ClientConnection represents a client WebSocket connection
type ClientConnection struct {
	UserID     string
	Connection *websocket.Conn
}

// NewWebSocketManager creates the connection hub and starts its event loop.
func NewWebSocketManager(allowedOrigin string) *WebSocketManager {
	wsm := &WebSocketManager{
		clients: make(map[string]*websocket.Conn),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == allowedOrigin {
					return true
				}
				logrus.Warnf("WebSocket connection rejected from origin: %s", origin)
				return false
			},
		},
		register:   make(chan *ClientConnection, 100),
		unregister: make(chan *ClientConnection, 100),
		broadcast:  make(chan *notification.WebSocketMessage, 1000),
	}
	go wsm.run()
	return wsm
}

// run handles WebSocket manager event loop
func (wsm *WebSocketManager) run() {
	for {
		select {
		case client := <-wsm.register:
			wsm.registerClient(client)

		case client := <-wsm.unregister:
			wsm.unregisterClient(client)

		case message := <-wsm.broadcast:
			wsm.broadcastMessage(message)
		}
	}
}

// registerClient adds a new client connection
func (wsm *WebSocketManager) registerClient(client *ClientConnection) {
	wsm.mutex.Lock()
	defer wsm.mutex.Unlock()

	// A reconnecting user replaces their previous connection.
	if existingConn, exists := wsm.clients[client.UserID]; exists {
		existingConn.Close()
	}

	wsm.clients[client.UserID] = client.Connection
	logrus.Infof("WebSocket client connected: %s (total: %d)", client.UserID, len(wsm.clients))
}

// unregisterClient removes a client connection
func (wsm *WebSocketManager) unregisterClient(client *ClientConnection) {
	wsm.mutex.Lock()
	defer wsm.mutex.Unlock()

	if _, exists := wsm.clients[client.UserID]; exists {
		delete(wsm.clients, client.UserID)
		client.Connection.Close()
		logrus.Infof("WebSocket client disconnected: %s (total: %d)", client.UserID, len(wsm.clients))
	}
}

// broadcastMessage sends message to all connected clients
func (wsm *WebSocketManager) broadcastMessage(message *notification.WebSocketMessage) {
	wsm.mutex.RLock()
	defer wsm.mutex.RUnlock()

	for userID, conn := range wsm.clients {
		if err := conn.WriteJSON(message); err != nil {
			logrus.WithError(err).Warnf("failed to send message to user %s", userID)
			go func(uid string, connection *websocket.Conn) {
				wsm.unregister <- &ClientConnection{UserID: uid, Connection: connection}
			}(userID, conn)
		}
	}
}

// SendToUser sends message to specific user
func (wsm *WebSocketManager) SendToUser(userID string, message *notification.WebSocketMessage) error {
	wsm.mutex.RLock()
	conn, exists := wsm.clients[userID]
	wsm.mutex.RUnlock()

	if !exists {
		return fmt.Errorf("user %s not connected", userID)
	}

	if err := conn.WriteJSON(message); err != nil {
		go func() {
			wsm.unregister <- &ClientConnection{UserID: userID, Connection: conn}
		}()
		return err
	}
	return nil
}

// BroadcastToAll queues a message for every connected client
func (wsm *WebSocketManager) BroadcastToAll(message *notification.WebSocketMessage) {
	select {
	case wsm.broadcast <- message:
	default:
		logrus.Warnf("broadcast queue full, dropping message: %s", message.Message)
	}
}

// HandleWebSocketConnection upgrades HTTP connection to WebSocket
func (wsm *WebSocketManager) HandleWebSocketConnection(c *gin.Context) {
	userID := c.Param("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID required"})
		return
	}

	conn, err := wsm.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Error("failed to upgrade WebSocket")
		return
	}

	client := &ClientConnection{
		UserID:     userID,
		Connection: conn,
	}

	wsm.register <- client

	defer func() {
		wsm.unregister <- client
	}()

	// Keep connection alive and answer pings until the client goes away.
	for {
		var message map[string]interface{}
		if err := conn.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithError(err).Warnf("WebSocket error for user %s", userID)
			}
			break
		}

		if msgType, ok := message["type"].(string); ok && msgType == "ping" {
			pongMsg := &notification.WebSocketMessage{
				Type:      "pong",
				Level:     notification.NotificationLevelInfo,
				Message:   "pong",
				Timestamp: time.Now(),
				UserID:    parseUserID(userID),
			}
			if err := wsm.SendToUser(userID, pongMsg); err != nil {
				break
			}
		}
	}
}

// GetConnectedUsers returns list of connected user IDs
func (wsm *WebSocketManager) GetConnectedUsers() []string {
	wsm.mutex.RLock()
	defer wsm.mutex.RUnlock()

	users := make([]string, 0, len(wsm.clients))
	for userID := range wsm.clients {
		users = append(users, userID)
	}
	return users
}

// GetConnectionCount returns number of active connections
func (wsm *WebSocketManager) GetConnectionCount() int {
	wsm.mutex.RLock()
	defer wsm.mutex.RUnlock()
	return len(wsm.clients)
}

func parseUserID(str string) *uint {
	if id, err := strconv.ParseUint(str, 10, 32); err == nil {
		uid := uint(id)
		return &uid
	}
	return nil
}
