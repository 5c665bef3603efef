package dbus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"
)

// Client sends notifications to the session notification daemon.
// The bus connection is opened lazily on first use.
type Client struct {
	logger *slog.Logger

	mu   sync.Mutex
	conn *dbus.Conn
	dial func() (*dbus.Conn, error)
}

// NewClient creates a client that will connect to the session bus.
func NewClient(logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		logger: logger,
		dial: func() (*dbus.Conn, error) {
			return dbus.ConnectSessionBus()
		},
	}
}

func (c *Client) object() (dbus.BusObject, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		conn, err := c.dial()
		if err != nil {
			return nil, fmt.Errorf("failed to connect to session bus: %w", err)
		}
		c.conn = conn
		c.logger.Debug("connected to session bus")
	}
	return c.conn.Object(DBusBusName, DBusPath), nil
}

// Notify shows a notification and returns the server-assigned ID.
func (c *Client) Notify(ctx context.Context, n *Notification) (uint32, error) {
	obj, err := c.object()
	if err != nil {
		return 0, err
	}

	var id uint32
	call := obj.CallWithContext(ctx, DBusInterface+".Notify", 0, n.args()...)
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("notify call failed: %w", err)
	}

	c.logger.Debug("notification sent", "id", id, "summary", n.Summary, "app", n.AppName)
	return id, nil
}

// CloseNotification asks the server to close a notification.
func (c *Client) CloseNotification(ctx context.Context, id uint32) error {
	obj, err := c.object()
	if err != nil {
		return err
	}

	if err := obj.CallWithContext(ctx, DBusInterface+".CloseNotification", 0, id).Err; err != nil {
		return fmt.Errorf("close notification call failed: %w", err)
	}
	return nil
}

// ServerInformation queries the running notification daemon.
func (c *Client) ServerInformation(ctx context.Context) (ServerInfo, error) {
	obj, err := c.object()
	if err != nil {
		return ServerInfo{}, err
	}

	var info ServerInfo
	call := obj.CallWithContext(ctx, DBusInterface+".GetServerInformation", 0)
	if err := call.Store(&info.Name, &info.Vendor, &info.Version, &info.SpecVersion); err != nil {
		return ServerInfo{}, fmt.Errorf("get server information failed: %w", err)
	}
	return info, nil
}

// Close closes the bus connection, if one was opened.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}
