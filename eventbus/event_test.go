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
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	testEventA EventType = iota + 1
	testEventB
)

type testEvent struct{ t EventType }

func (e testEvent) GetEventType() EventType { return e.t }

type countingHandler struct{ seen []EventType }

func (h *countingHandler) HandlerDescription(EventType) string { return "count" }
func (h *countingHandler) HandleEvent(ev Event)                { h.seen = append(h.seen, ev.GetEventType()) }
func (h *countingHandler) Name() string                        { return "counter" }

func TestRoute(t *testing.T) {
	bus := &DefaultEventBus{}
	bus.InitDefault()
	h := &countingHandler{}
	bus.ListenTo(EventHandlerRegisterInfo{Type: testEventA, Name: "A", Handler: h})
	bus.RegisterEventType(testEventB, "B")

	assert.Panics(t, func() { bus.Route(testEvent{testEventA}) })
	bus.Build()
	assert.Panics(t, func() {
		bus.ListenTo(EventHandlerRegisterInfo{Type: testEventB, Handler: h})
	})

	bus.Route(testEvent{testEventA})
	bus.Route(testEvent{testEventB})
	assert.Equal(t, []EventType{testEventA}, h.seen)

	typ, ok := bus.TypeOf("B")
	assert.True(t, ok)
	assert.Equal(t, testEventB, typ)
	assert.Equal(t, "A", bus.NameOf(testEventA))
	assert.Equal(t, "9", bus.NameOf(9))
}
