// Package push listens to the controller's websocket and turns every
// message into a sync notification.
package push

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/abelbrown/stageview/internal/coord"
	"github.com/abelbrown/stageview/internal/logging"
	"github.com/abelbrown/stageview/internal/otel"
)

// DefaultReconnect is the delay before redialing a dropped connection.
const DefaultReconnect = 2 * time.Second

// Notifier receives decoded notifications. *coord.Controller implements it.
type Notifier interface {
	Notify(n coord.Notification)
}

// Listener maintains the websocket connection.
type Listener struct {
	url       string
	notifier  Notifier
	dialer    *websocket.Dialer
	reconnect time.Duration
	events    *otel.Logger
	log       *log.Logger
}

// NewListener creates a Listener for url (e.g. "ws://localhost:4317/api/ws").
// A non-positive reconnect uses DefaultReconnect. events may be nil.
func NewListener(url string, n Notifier, reconnect time.Duration, events *otel.Logger) *Listener {
	if reconnect <= 0 {
		reconnect = DefaultReconnect
	}
	return &Listener{
		url:       url,
		notifier:  n,
		dialer:    &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		reconnect: reconnect,
		events:    events,
		log:       logging.WithPrefix("push"),
	}
}

// Run keeps a connection open until ctx is cancelled, redialing after a
// fixed delay whenever it drops. Returns nil on cancellation.
func (l *Listener) Run(ctx context.Context) error {
	for {
		err := l.session(ctx)
		if ctx.Err() != nil {
			return nil
		}

		l.events.Emit(otel.Event{Level: otel.LevelWarn, Kind: otel.KindPushDisconnect, Comp: "push", Err: errString(err)})
		l.log.Warn("websocket disconnected", "url", l.url, "err", err, "retry", l.reconnect)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(l.reconnect):
		}
	}
}

// session dials once and reads until the connection fails.
func (l *Listener) session(ctx context.Context) error {
	conn, _, err := l.dialer.DialContext(ctx, l.url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", l.url, err)
	}
	defer conn.Close()

	// Unblock ReadMessage on shutdown.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	l.events.Info(otel.KindPushConnect, "push", l.url)
	l.log.Info("websocket connected", "url", l.url)

	// Whatever changed while disconnected is picked up by one fetch.
	l.notifier.Notify(coord.Refresh())

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		l.handle(payload)
	}
}

// handle decodes one frame. Text and binary frames are treated alike.
func (l *Listener) handle(payload []byte) {
	if otel.TraceEnabled() {
		l.log.Debug("raw message", "data", string(payload))
	}

	n, err := Decode(payload)
	if err != nil {
		l.events.Warn(otel.KindPushMalformed, "push", err.Error())
		l.log.Debug("unparseable message, refetching", "err", err)
	} else {
		l.events.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindPushMessage, Comp: "push"})
	}
	l.notifier.Notify(n)
}

// message is the push payload. Only the override flags are inspected.
type message struct {
	Results map[string]any `json:"results"`
}

// Decode parses a push payload. Only results.blank and results.theme set
// to JSON true produce an override; every other payload, including one that
// fails to parse, is a refresh. The error is informational.
func Decode(payload []byte) (coord.Notification, error) {
	var msg message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return coord.Refresh(), fmt.Errorf("decode push payload: %w", err)
	}
	blank, _ := msg.Results["blank"].(bool)
	theme, _ := msg.Results["theme"].(bool)
	return coord.Notification{Blank: blank, Theme: theme}, nil
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
