// Copyright © 2019 Annchain Authors <EMAIL ADDRESS>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package wserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/annchain/tokengate/eventbus"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	serverDefaultWSPath = "/ws"
	eventQueueSize      = 256
)

var defaultUpgrader = &websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(*http.Request) bool {
		return true
	},
}

// Server pushes eventbus events to websocket subscribers. It is an
// eventbus.EventHandler; events are queued and written by a single loop.
type Server struct {
	// Address for server to listen on
	Addr string

	// Path for websocket request, default "/ws".
	WSPath string

	namer  func(eventbus.EventType) string
	subs   *subscriptions
	queue  chan eventbus.Event
	engine *gin.Engine
	server *http.Server
	quit   chan struct{}
}

// NewServer builds a server on addr. namer turns event types into the
// names clients subscribe to.
func NewServer(addr string, namer func(eventbus.EventType) string) *Server {
	s := &Server{
		Addr:   addr,
		WSPath: serverDefaultWSPath,
		namer:  namer,
		subs:   newSubscriptions(),
		queue:  make(chan eventbus.Event, eventQueueSize),
		quit:   make(chan struct{}),
	}
	wh := &websocketHandler{
		upgrader: defaultUpgrader,
		subs:     s.subs,
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.GET(s.WSPath, wh.Handle)
	s.engine = engine

	s.server = &http.Server{
		Addr:    s.Addr,
		Handler: engine,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Serve() {
	if err := s.server.ListenAndServe(); err != nil {
		// cannot panic, because this probably is an intentional close
		log.WithError(err).Info("websocket server")
	}
}

func (s *Server) Start() {
	go s.Serve()
	go s.publishLoop()
}

func (s *Server) Stop() {
	close(s.quit)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		log.WithError(err).Info("websocket server shutdown")
	}
	log.Info("websocket server exiting")
}

func (s *Server) Name() string {
	return fmt.Sprintf("websocket Server at %s", s.Addr)
}

// Subscribers returns how many connections listen to event by name.
func (s *Server) Subscribers(event string) int {
	return s.subs.Count(event)
}

func (s *Server) HandlerDescription(t eventbus.EventType) string {
	return "push " + s.namer(t) + " to websocket subscribers"
}

// HandleEvent queues ev for pushing. It never blocks the router; when the
// queue is full the event is dropped.
func (s *Server) HandleEvent(ev eventbus.Event) {
	select {
	case s.queue <- ev:
	default:
		log.WithField("type", s.namer(ev.GetEventType())).Warn("websocket queue full, event dropped")
	}
}

func (s *Server) publishLoop() {
	for {
		select {
		case ev := <-s.queue:
			s.publish(ev)
		case <-s.quit:
			return
		}
	}
}

func (s *Server) publish(ev eventbus.Event) {
	name := s.namer(ev.GetEventType())
	bs, err := encodeEvent(name, ev)
	if err != nil {
		log.WithError(err).Error("failed to marshal ws message")
		return
	}
	cnt := s.Push(name, bs)
	log.WithField("type", name).WithField("clients", cnt).Trace("pushed to ws")
}

// Push writes message to every subscriber of event and returns how many
// got it. Connections failing to write are unsubscribed.
func (s *Server) Push(event string, message []byte) int {
	cnt := 0
	for _, conn := range s.subs.Get(event) {
		if _, err := conn.Write(message); err != nil {
			log.WithError(err).WithField("conn", conn.GetID()).Debug("dropping websocket subscriber")
			s.subs.RemoveAll(conn)
			continue
		}
		cnt++
	}
	return cnt
}
