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
package eventbus

import (
	"strconv"
	"sync"

	log "github.com/sirupsen/logrus"
)

type EventType uint8

type Event interface {
	GetEventType() EventType
}

type EventHandler interface {
	HandlerDescription(EventType) string
	HandleEvent(Event)
	Name() string
}

// EventRouter is what event producers hold on to.
type EventRouter interface {
	Route(ev Event)
}

type EventHandlerRegisterInfo struct {
	Type    EventType
	Name    string
	Handler EventHandler
}

type DefaultEventBus struct {
	ID         int
	knownNames map[EventType]string
	knownTypes map[string]EventType
	listeners  map[EventType][]EventHandler
	inited     bool       // do not use Mutex after initialization. It will downgrade performance
	mu         sync.Mutex // use only during initialization
}

func (e *DefaultEventBus) InitDefault() {
	e.listeners = make(map[EventType][]EventHandler)
	e.knownNames = make(map[EventType]string)
	e.knownTypes = make(map[string]EventType)
}

// RegisterEventType names an event type without subscribing to it.
func (e *DefaultEventBus) RegisterEventType(t EventType, name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.knownNames[t] = name
	e.knownTypes[name] = t
}

func (e *DefaultEventBus) ListenTo(regInfo EventHandlerRegisterInfo) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.inited {
		panic("bad code. register listeners before building eventbus")
	}
	e.listeners[regInfo.Type] = append(e.listeners[regInfo.Type], regInfo.Handler)
	if regInfo.Name != "" {
		e.knownNames[regInfo.Type] = regInfo.Name
		e.knownTypes[regInfo.Name] = regInfo.Type
	}
}

// Eventbus must be built before events are to be received.
// This is an commit from programmer, showing that all modules are inited and well-prepared to receive events.
func (e *DefaultEventBus) Build() {
	e.inited = true
}

// TypeOf returns the event type registered under name.
func (e *DefaultEventBus) TypeOf(name string) (EventType, bool) {
	t, ok := e.knownTypes[name]
	return t, ok
}

// NameOf returns the registered name of t, or its number.
func (e *DefaultEventBus) NameOf(t EventType) string {
	if name, ok := e.knownNames[t]; ok {
		return name
	}
	return strconv.Itoa(int(t))
}

func (e *DefaultEventBus) Route(ev Event) {
	if !e.inited {
		panic("bad code. build eventbus before routing")
	}
	name := e.NameOf(ev.GetEventType())
	log.WithField("me", e.ID).WithField("type", name).WithField("v", ev).Debug("router received event")
	handlers, ok := e.listeners[ev.GetEventType()]
	if !ok {
		log.WithField("me", e.ID).WithField("type", name).Trace("no event handler to handle event type")
		return
	}
	for _, handler := range handlers {
		log.WithFields(log.Fields{
			"me":      e.ID,
			"handler": handler.Name(),
			"desc":    handler.HandlerDescription(ev.GetEventType()),
		}).Trace("handling")
		handler.HandleEvent(ev)
	}
}
