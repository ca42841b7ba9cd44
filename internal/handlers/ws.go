package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/teamhub-dev/teamhub/internal/types"
)

var (
	workspaceClients   = make(map[string]map[*websocket.Conn]bool)
	workspaceClientsMu sync.RWMutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// BroadcastWorkspaceRefresh tells every client watching the workspace to
// refetch. Called after project, task and member mutations.
func BroadcastWorkspaceRefresh(workspaceID string) {
	workspaceClientsMu.RLock()
	clients, exists := workspaceClients[workspaceID]
	if !exists || len(clients) == 0 {
		workspaceClientsMu.RUnlock()
		return
	}

	clientsCopy := make([]*websocket.Conn, 0, len(clients))
	for conn := range clients {
		clientsCopy = append(clientsCopy, conn)
	}
	workspaceClientsMu.RUnlock()

	for _, conn := range clientsCopy {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Printf("Failed to set write deadline for broadcast: %v", err)
			continue
		}

		err := conn.WriteJSON(map[string]string{
			"type":         "refresh",
			"message":      "Workspace data updated",
			"workspace_id": workspaceID,
		})

		if err != nil {
			log.Printf("Failed to broadcast refresh to client: %v", err)
			workspaceClientsMu.Lock()
			if clients, exists := workspaceClients[workspaceID]; exists {
				delete(clients, conn)
				if len(clients) == 0 {
					delete(workspaceClients, workspaceID)
				}
			}
			workspaceClientsMu.Unlock()
			conn.Close()
		}
	}
}

func WebSocket(c *gin.Context) {
	workspaceID := c.Param("workspace_id")

	if workspaceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Workspace ID is required"})
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline in pong handler: %v", err)
		}
		return nil
	})

	workspaceClientsMu.Lock()
	if workspaceClients[workspaceID] == nil {
		workspaceClients[workspaceID] = make(map[*websocket.Conn]bool)
	}
	workspaceClients[workspaceID][conn] = true
	workspaceClientsMu.Unlock()

	defer func() {
		workspaceClientsMu.Lock()

		if clients, exists := workspaceClients[workspaceID]; exists {
			delete(clients, conn)

			if len(clients) == 0 {
				delete(workspaceClients, workspaceID)
			}
		}

		workspaceClientsMu.Unlock()
		conn.Close()

		log.Printf("WebSocket connection closed for workspace %s", workspaceID)
	}()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		log.Printf("Failed to set write deadline for welcome message: %v", err)
		return
	}

	err = conn.WriteJSON(map[string]string{
		"type":         "connected",
		"message":      "WebSocket connection established",
		"workspace_id": workspaceID,
	})

	if err != nil {
		log.Printf("Failed to send welcome message: %v", err)
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	go func() {
		for range ticker.C {
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Printf("Failed to set write deadline for workspace %s: %v", workspaceID, err)
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("Ping failed for workspace %s: %v", workspaceID, err)
				return
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline for workspace %s: %v", workspaceID, err)
			break
		}

		messageType, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error for workspace %s: %v", workspaceID, err)
			}
			break
		}

		switch messageType {
		case websocket.TextMessage:
			log.Printf("Received message from client in workspace %s: %s", workspaceID, string(message))
		case websocket.PongMessage:
			log.Printf("Received pong from workspace %s", workspaceID)
		}
	}
}
