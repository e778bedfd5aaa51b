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
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// RegisterMessage subscribes an open connection to one more event.
type RegisterMessage struct {
	Event string `json:"event"`
}

type websocketHandler struct {
	upgrader *websocket.Upgrader
	subs     *subscriptions
}

func (wh *websocketHandler) Handle(ctx *gin.Context) {
	wh.ServeHTTP(ctx.Writer, ctx.Request)
}

// ServeHTTP upgrades the request and subscribes the connection to the
// comma separated names in the event query parameter, or to every event
// when none is given.
func (wh *websocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	wsConn, err := wh.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Debug("websocket upgrade failed")
		return
	}

	conn := NewConn(wsConn)
	for _, event := range requestedEvents(r.URL.Query().Get("event")) {
		wh.subs.Add(event, conn)
	}
	conn.AfterReadFunc = func(messageType int, r io.Reader) {
		var rm RegisterMessage
		if err := json.NewDecoder(r).Decode(&rm); err != nil {
			log.WithError(err).Debug("bad register message")
			return
		}
		if rm.Event != "" {
			wh.subs.Add(rm.Event, conn)
		}
	}
	conn.BeforeCloseFunc = func() {
		wh.subs.RemoveAll(conn)
	}
	log.WithField("conn", conn.GetID()).WithField("remote", r.RemoteAddr).Debug("websocket connected")
	conn.Listen()
}

func requestedEvents(query string) []string {
	var events []string
	for _, name := range strings.Split(query, ",") {
		if name = strings.TrimSpace(name); name != "" {
			events = append(events, name)
		}
	}
	if len(events) == 0 {
		return []string{AllEvents}
	}
	return events
}
