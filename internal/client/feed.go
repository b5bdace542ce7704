package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"flowtask/internal/events"

	"github.com/gorilla/websocket"
)

// SubscribeFeed connects to the change feed and invokes handler for every
// event until ctx is canceled or the connection drops. The feed is trusted as
// authoritative; events are delivered in arrival order with no
// deduplication.
func (c *Client) SubscribeFeed(ctx context.Context, handler func(events.TaskChange)) error {
	if c.token == "" {
		return fmt.Errorf("feed subscription requires a session token")
	}

	wsURL, err := c.feedURL()
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to change feed: %w", err)
	}

	go func() {
		<-ctx.Done()
		conn.Close()
	}()
	defer conn.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("change feed closed: %w", err)
		}

		var change events.TaskChange
		if err := json.Unmarshal(data, &change); err != nil {
			continue
		}
		handler(change)
	}
}

func (c *Client) feedURL() (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}

	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/api/realtime/tasks"

	q := u.Query()
	q.Set("token", c.token)
	u.RawQuery = q.Encode()

	return u.String(), nil
}
