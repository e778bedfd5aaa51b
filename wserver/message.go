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

	"github.com/annchain/tokengate/eventbus"
)

// EventMessage is the frame pushed to subscribers.
type EventMessage struct {
	Type string         `json:"type"`
	Data eventbus.Event `json:"data"`
}

func encodeEvent(name string, ev eventbus.Event) ([]byte, error) {
	return json.Marshal(EventMessage{Type: name, Data: ev})
}
