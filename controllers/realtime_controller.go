package controllers

import (
	"encoding/json"
	"time"

	"github.com/RehanAli357/baby-food/services"
	"github.com/RehanAli357/baby-food/views"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const pingInterval = 25 * time.Second

type RealtimeController struct {
	Catalog  *services.Catalog
	RT       *services.RealtimeHub
	Renderer *views.Renderer
	Log      *zap.Logger
}

// constructor
func NewRealtimeController(catalog *services.Catalog, rt *services.RealtimeHub, r *views.Renderer, log *zap.Logger) *RealtimeController {
	return &RealtimeController{Catalog: catalog, RT: rt, Renderer: r, Log: log}
}

// nil CheckOrigin keeps gorilla's same-origin check
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// ViewUpdate is sent after the connection opens and after every accepted
// event: the new state and the re-rendered result grid.
type ViewUpdate struct {
	Session string             `json:"session"`
	State   services.ViewState `json:"state"`
	Count   int                `json:"count"`
	Empty   bool               `json:"empty"`
	HTML    string             `json:"html"`
}

type viewError struct {
	Error string `json:"error"`
}

// GET /ws/view
func (rc *RealtimeController) ViewWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		rc.Log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	session := services.NewViewSession(rc.Catalog)
	cl := &services.WSClient{Session: session, Conn: conn}
	rc.RT.Register(cl)
	defer rc.RT.Unregister(cl)

	log := rc.Log.With(zap.String("session", session.ID.String()))
	log.Debug("viewer connected")

	done := make(chan struct{})
	defer close(done)
	go keepAlive(conn, done)

	if err := rc.sendUpdate(conn, session); err != nil {
		log.Debug("initial render not delivered", zap.Error(err))
		return
	}

	// read loop ends on client close/error → unregister
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			log.Debug("viewer disconnected", zap.Error(err))
			return
		}

		var ev services.ViewEvent
		if err := json.Unmarshal(msg, &ev); err != nil {
			if err := conn.WriteJSON(viewError{Error: "invalid event: " + err.Error()}); err != nil {
				return
			}
			continue
		}
		if err := session.Apply(ev); err != nil {
			if err := conn.WriteJSON(viewError{Error: err.Error()}); err != nil {
				return
			}
			continue
		}

		if err := rc.sendUpdate(conn, session); err != nil {
			log.Debug("render not delivered", zap.Error(err))
			return
		}
	}
}

func (rc *RealtimeController) sendUpdate(conn *websocket.Conn, s *services.ViewSession) error {
	foods := s.Result()
	html, err := rc.Renderer.ResultsHTML(foods)
	if err != nil {
		return err
	}
	return conn.WriteJSON(ViewUpdate{
		Session: s.ID.String(),
		State:   s.State(),
		Count:   len(foods),
		Empty:   len(foods) == 0,
		HTML:    html,
	})
}

// keepAlive pings through proxies until done is closed. WriteControl may run
// alongside the handler's writes.
func keepAlive(conn *websocket.Conn, done <-chan struct{}) {
	t := time.NewTicker(pingInterval)
	defer t.Stop()
	for {
		select {
		case <-done:
			return
		case <-t.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return
			}
		}
	}
}
