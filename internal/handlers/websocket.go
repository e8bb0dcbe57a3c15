package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"sync"

	"deck-of-cards-go/internal/auth"
	"deck-of-cards-go/internal/config"
	"deck-of-cards-go/internal/deck"
	"deck-of-cards-go/internal/middleware"
	ws "deck-of-cards-go/pkg/websocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" {
			// Non-browser clients (no Origin) are allowed.
			return true
		}
		if cfgDevAllowAll() {
			return true
		}
		if cfgIsDev() {
			return isLocalhostOrigin(origin) || isAllowedOrigin(origin)
		}
		return isAllowedOrigin(origin)
	},
}

// set by config at startup
var (
	originMu       sync.RWMutex
	allowedOrigins = map[string]bool{}
	devMode        = false
	devAllowAll    = false
)

func SetWebSocketOriginPolicy(isDev bool, allowAllDev bool, origins []string) {
	originMu.Lock()
	defer originMu.Unlock()
	devMode = isDev
	devAllowAll = allowAllDev
	allowedOrigins = map[string]bool{}
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o != "" {
			allowedOrigins[o] = true
		}
	}
}

func cfgIsDev() bool {
	originMu.RLock()
	defer originMu.RUnlock()
	return devMode
}

func cfgDevAllowAll() bool {
	originMu.RLock()
	defer originMu.RUnlock()
	return devMode && devAllowAll
}

func isAllowedOrigin(origin string) bool {
	originMu.RLock()
	defer originMu.RUnlock()
	return allowedOrigins[origin]
}

func isLocalhostOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	host := u.Hostname()
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}

// WebSocketHandler authenticates, upgrades and registers a deck stream
// client. Its first message is "connected" carrying the view at the moment
// the hub admits it; deck_update messages follow.
func WebSocketHandler(hubProvider func() (*ws.Hub, bool), svc *deck.Service, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := wsToken(c, cfg)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}
		claims, err := auth.ParseAndValidateToken(token, cfg)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// Preconditions before attempting the upgrade so we can return HTTP errors normally.
		hub, ok := hubProvider()
		if !ok {
			logger.Error("ws hub unavailable", zap.String("subject", claims.Subject))
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "realtime unavailable"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("ws upgrade failed",
				zap.String("remote", c.ClientIP()),
				zap.String("origin", c.Request.Header.Get("Origin")),
				zap.Error(err),
			)
			return
		}

		client := ws.NewClient(conn, hub, claims.Subject)
		hub.RegisterWithGreeting(client, "connected", func() any { return svc.State() })

		go client.WritePump()
		go client.ReadPump(nil)
	}
}

// wsToken accepts the cookie or Bearer header, and ?token= when enabled.
func wsToken(c *gin.Context, cfg config.Config) string {
	if t := middleware.TokenFromRequest(c); t != "" {
		return t
	}
	if cfg.WSAllowQueryTokens {
		return strings.TrimSpace(c.Query("token"))
	}
	return ""
}
