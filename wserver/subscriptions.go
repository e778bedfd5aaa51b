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
	"sync"
)

// AllEvents subscribes a connection to every event type.
const AllEvents = "*"

// subscriptions maps an event name to the connections listening to it.
type subscriptions struct {
	conns map[string]map[string]*Conn
	mu    sync.RWMutex
}

func newSubscriptions() *subscriptions {
	return &subscriptions{
		conns: make(map[string]map[string]*Conn),
	}
}

// Add subscribes conn to event. It reports false if conn was already there.
func (s *subscriptions) Add(event string, conn *Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	conns, ok := s.conns[event]
	if !ok {
		conns = make(map[string]*Conn)
		s.conns[event] = conns
	}
	if _, ok := conns[conn.GetID()]; ok {
		return false
	}
	conns[conn.GetID()] = conn
	return true
}

func (s *subscriptions) Remove(event string, conn *Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conns, ok := s.conns[event]
	if !ok {
		return
	}
	delete(conns, conn.GetID())
	if len(conns) == 0 {
		delete(s.conns, event)
	}
}

// RemoveAll drops conn from every event.
func (s *subscriptions) RemoveAll(conn *Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for event, conns := range s.conns {
		delete(conns, conn.GetID())
		if len(conns) == 0 {
			delete(s.conns, event)
		}
	}
}

// Get returns the connections for event plus the wildcard subscribers, each once.
func (s *subscriptions) Get(event string) []*Conn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	var ret []*Conn
	for _, key := range []string{event, AllEvents} {
		for id, c := range s.conns[key] {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ret = append(ret, c)
		}
	}
	return ret
}

func (s *subscriptions) Count(event string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conns[event])
}
