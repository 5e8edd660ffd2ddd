// Package teletest provides an in-memory tele.Context for handler tests.
package teletest

import (
	"sync"

	tele "gopkg.in/telebot.v4"
)

// Sent is one recorded outbound call.
type Sent struct {
	What any
	Opts []any
}

// Context implements the parts of tele.Context that handlers in this module
// touch. Calling any other method panics.
type Context struct {
	tele.Context

	upd tele.Update

	mu      sync.Mutex
	store   map[string]any
	sent    []Sent
	SendErr error
}

// NewContext wraps upd.
func NewContext(upd tele.Update) *Context {
	return &Context{upd: upd, store: make(map[string]any)}
}

// TextMessage builds a private chat text update.
func TextMessage(updateID int, userID int64, text string) *Context {
	return NewContext(tele.Update{
		ID: updateID,
		Message: &tele.Message{
			ID:     updateID,
			Sender: &tele.User{ID: userID, Username: "user"},
			Chat:   &tele.Chat{ID: userID, Type: tele.ChatPrivate},
			Text:   text,
		},
	})
}

func (c *Context) Update() tele.Update { return c.upd }

func (c *Context) Message() *tele.Message { return c.upd.Message }

func (c *Context) Sender() *tele.User {
	if c.upd.Message != nil {
		return c.upd.Message.Sender
	}
	if c.upd.Callback != nil {
		return c.upd.Callback.Sender
	}
	return nil
}

func (c *Context) Chat() *tele.Chat {
	if c.upd.Message != nil {
		return c.upd.Message.Chat
	}
	return nil
}

func (c *Context) Text() string {
	if c.upd.Message != nil {
		return c.upd.Message.Text
	}
	return ""
}

func (c *Context) Get(key string) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store[key]
}

func (c *Context) Set(key string, val any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = val
}

func (c *Context) Send(what any, opts ...any) error {
	if c.SendErr != nil {
		return c.SendErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, Sent{What: what, Opts: opts})
	return nil
}

func (c *Context) Reply(what any, opts ...any) error {
	return c.Send(what, opts...)
}

// Sends returns a copy of the recorded outbound calls.
func (c *Context) Sends() []Sent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Sent(nil), c.sent...)
}

// Texts returns the string payloads that were sent, in order.
func (c *Context) Texts() []string {
	var out []string
	for _, s := range c.Sends() {
		if text, ok := s.What.(string); ok {
			out = append(out, text)
		}
	}
	return out
}
