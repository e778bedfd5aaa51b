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
	"errors"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

var ErrConnClosed = errors.New("conn is closed")

// Conn wraps a websocket connection with a lazily assigned id.
type Conn struct {
	Conn *websocket.Conn

	AfterReadFunc   func(messageType int, r io.Reader)
	BeforeCloseFunc func()

	once   sync.Once
	id     string
	stopCh chan struct{}
	closed sync.Once
}

func NewConn(conn *websocket.Conn) *Conn {
	return &Conn{
		Conn:   conn,
		stopCh: make(chan struct{}),
	}
}

// Write sends p as one text frame.
func (c *Conn) Write(p []byte) (n int, err error) {
	select {
	case <-c.stopCh:
		return 0, ErrConnClosed
	default:
		if err = c.Conn.WriteMessage(websocket.TextMessage, p); err != nil {
			return 0, err
		}
		return len(p), nil
	}
}

func (c *Conn) GetID() string {
	c.once.Do(func() {
		c.id = uuid.New().String()
	})
	return c.id
}

// Listen keeps reading from the connection until it fails or gets closed.
func (c *Conn) Listen() {
	c.Conn.SetCloseHandler(func(code int, text string) error {
		message := websocket.FormatCloseMessage(code, "")
		_ = c.Conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(time.Second))
		return nil
	})
	defer func() {
		if c.BeforeCloseFunc != nil {
			c.BeforeCloseFunc()
		}
		_ = c.Close()
	}()

	for {
		select {
		case <-c.stopCh:
			return
		default:
		}
		messageType, r, err := c.Conn.NextReader()
		if err != nil {
			log.WithError(err).WithField("conn", c.GetID()).Debug("websocket read stopped")
			return
		}
		if c.AfterReadFunc != nil {
			c.AfterReadFunc(messageType, r)
		}
	}
}

func (c *Conn) Close() error {
	err := ErrConnClosed
	c.closed.Do(func() {
		close(c.stopCh)
		err = c.Conn.Close()
	})
	return err
}
