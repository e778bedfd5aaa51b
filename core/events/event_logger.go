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
package events

import (
	"github.com/annchain/tokengate/eventbus"
	log "github.com/sirupsen/logrus"
)

// EventLogger writes every factory event to Logger, or to the standard
// logger when Logger is nil.
type EventLogger struct {
	Logger *log.Logger
}

func (e EventLogger) HandlerDescription(ev eventbus.EventType) string {
	return "log " + Names[ev]
}

func (e EventLogger) HandleEvent(ev eventbus.Event) {
	logger := e.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}
	logger.WithField("event", Names[ev.GetEventType()]).WithField("v", ev).Info("factory event")
}

func (e EventLogger) Name() string {
	return "EventLogger"
}

// Register names every event type on bus and subscribes handler to all of
// them. It must run before bus.Build.
func Register(bus *eventbus.DefaultEventBus, handlers ...eventbus.EventHandler) {
	for t, name := range Names {
		bus.RegisterEventType(t, name)
		for _, h := range handlers {
			bus.ListenTo(eventbus.EventHandlerRegisterInfo{Type: t, Name: name, Handler: h})
		}
	}
}
