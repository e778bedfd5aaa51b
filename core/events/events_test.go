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
	"bytes"
	"testing"

	"github.com/annchain/tokengate/eventbus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type collector struct {
	got []eventbus.Event
}

func (c *collector) HandlerDescription(eventbus.EventType) string { return "collect" }
func (c *collector) HandleEvent(ev eventbus.Event) { c.got = append(c.got, ev) }
func (c *collector) Name() string { return "collector" }

func TestRegisterSubscribesEveryType(t *testing.T) {
	bus := &eventbus.DefaultEventBus{}
	bus.InitDefault()
	c := &collector{}
	Register(bus, c)
	bus.Build()

	for typ, name := range Names {
		got, ok := bus.TypeOf(name)
		assert.True(t, ok)
		assert.Equal(t, typ, got)
	}
	bus.Route(&TokenCreatedEvent{Symbol: "GLD"})
	bus.Route(&TransferRejectedEvent{Reason: "AddressNotWhitelisted"})
	assert.Len(t, c.got, 2)
	assert.Equal(t, "transfer_rejected", bus.NameOf(c.got[1].GetEventType()))
}

func TestEventLoggerWritesToLogger(t *testing.T) {
	out := new(bytes.Buffer)
	logger := logrus.New()
	logger.Out = out
	logger.Formatter = &logrus.TextFormatter{DisableColors: true}

	EventLogger{Logger: logger}.HandleEvent(&PauseToggledEvent{Transfers: true, Paused: true})
	assert.Contains(t, out.String(), "event=pause_toggled")
}
