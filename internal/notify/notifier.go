// Package notify raises the desktop notification and alarm sound when the
// countdown finishes.
package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jmylchreest/snowball/internal/config"
	"github.com/jmylchreest/snowball/internal/dbus"
)

// DesktopEntry names the .desktop file the notification server can use to
// look up the application.
const DesktopEntry = "snowball"

// Sender delivers notifications to the notification server.
type Sender interface {
	Notify(ctx context.Context, n *dbus.Notification) (uint32, error)
	CloseNotification(ctx context.Context, id uint32) error
}

// SoundPlayer plays an audio file without blocking.
type SoundPlayer interface {
	Play(path string) error
}

// Notifier handles the timer-finished event.
type Notifier struct {
	sender Sender
	player SoundPlayer
	alarm  config.AlarmConfig
	logger *slog.Logger

	mu     sync.Mutex
	lastID uint32
}

// NewNotifier creates a notifier. player may be nil when no sound output is
// available.
func NewNotifier(sender Sender, player SoundPlayer, alarm config.AlarmConfig, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		sender: sender,
		player: player,
		alarm:  alarm,
		logger: logger,
	}
}

// Notification builds the message sent on timer expiry.
func (n *Notifier) Notification() *dbus.Notification {
	msg := &dbus.Notification{
		AppName:       n.alarm.AppName,
		AppIcon:       n.alarm.Icon,
		Summary:       n.alarm.Summary,
		Body:          n.alarm.Body,
		ExpireTimeout: dbus.ExpireNever,
	}
	msg.SetUrgency(dbus.UrgencyNormal)
	msg.SetHint("desktop-entry", DesktopEntry)
	if n.alarm.SoundName != "" {
		msg.SetHint("sound-name", n.alarm.SoundName)
	}
	return msg
}

// TimerFinished sends the notification and plays the alarm sound. Failures
// are logged and never propagate to the caller.
func (n *Notifier) TimerFinished(ctx context.Context) {
	if n.sender != nil {
		msg := n.Notification()
		msg.ReplacesID = n.LastID()
		id, err := n.sender.Notify(ctx, msg)
		if err != nil {
			n.logger.Error("failed to show timer notification", "error", err)
		} else {
			n.mu.Lock()
			n.lastID = id
			n.mu.Unlock()
			n.logger.Debug("timer notification shown", "id", id)
		}
	}

	if n.player != nil && n.alarm.SoundFile != "" {
		if err := n.player.Play(n.alarm.SoundFile); err != nil {
			n.logger.Warn("failed to play alarm sound", "path", n.alarm.SoundFile, "error", err)
		}
	}
}

// Dismiss closes the last timer notification if one is still known.
func (n *Notifier) Dismiss(ctx context.Context) {
	n.mu.Lock()
	id := n.lastID
	n.lastID = 0
	n.mu.Unlock()

	if id == 0 || n.sender == nil {
		return
	}
	if err := n.sender.CloseNotification(ctx, id); err != nil {
		n.logger.Debug("failed to close timer notification", "id", id, "error", err)
	}
}

// LastID returns the server-assigned ID of the last notification shown.
func (n *Notifier) LastID() uint32 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.lastID
}
