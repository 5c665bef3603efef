package dbus

import (
	"github.com/godbus/dbus/v5"
)

const (
	// DBusInterface is the notification interface name.
	DBusInterface = "org.freedesktop.Notifications"
	// DBusPath is the notification object path.
	DBusPath = "/org/freedesktop/Notifications"
	// DBusBusName is the bus name the notification daemon owns.
	DBusBusName = "org.freedesktop.Notifications"
)

// Urgency levels from the freedesktop.org notification specification.
const (
	UrgencyLow      = 0
	UrgencyNormal   = 1
	UrgencyCritical = 2
)

// Expire timeouts with special meaning.
const (
	// ExpireDefault lets the server pick the timeout.
	ExpireDefault int32 = -1
	// ExpireNever keeps the notification until the user dismisses it.
	ExpireNever int32 = 0
)

// Notification holds the arguments of an org.freedesktop.Notifications.Notify call.
type Notification struct {
	AppName       string
	ReplacesID    uint32
	AppIcon       string
	Summary       string
	Body          string
	Actions       []string // Alternating key, label pairs
	Hints         map[string]dbus.Variant
	ExpireTimeout int32 // -1 = server default, 0 = never expire
}

// SetHint sets a hint, allocating the map on first use.
func (n *Notification) SetHint(key string, value any) {
	if n.Hints == nil {
		n.Hints = make(map[string]dbus.Variant)
	}
	n.Hints[key] = dbus.MakeVariant(value)
}

// SetUrgency sets the urgency hint. Out-of-range values are clamped.
func (n *Notification) SetUrgency(urgency int) {
	switch {
	case urgency < UrgencyLow:
		urgency = UrgencyLow
	case urgency > UrgencyCritical:
		urgency = UrgencyCritical
	}
	n.SetHint("urgency", byte(urgency))
}

// Urgency extracts the urgency hint from the notification.
// Returns UrgencyNormal if not specified.
func (n *Notification) Urgency() int {
	if v, ok := n.Hints["urgency"]; ok {
		if b, ok := v.Value().(byte); ok {
			return int(b)
		}
	}
	return UrgencyNormal
}

// SoundName extracts the sound-name hint.
func (n *Notification) SoundName() string {
	return n.stringHint("sound-name")
}

// DesktopEntry extracts the desktop-entry hint.
func (n *Notification) DesktopEntry() string {
	return n.stringHint("desktop-entry")
}

func (n *Notification) stringHint(key string) string {
	if v, ok := n.Hints[key]; ok {
		if s, ok := v.Value().(string); ok {
			return s
		}
	}
	return ""
}

// args returns the Notify call arguments in wire order. The actions and
// hints arguments are never nil, since some daemons reject a nil array.
func (n *Notification) args() []any {
	actions := n.Actions
	if actions == nil {
		actions = []string{}
	}
	hints := n.Hints
	if hints == nil {
		hints = map[string]dbus.Variant{}
	}
	return []any{
		n.AppName,
		n.ReplacesID,
		n.AppIcon,
		n.Summary,
		n.Body,
		actions,
		hints,
		n.ExpireTimeout,
	}
}

// ServerInfo is the reply of GetServerInformation.
type ServerInfo struct {
	Name        string
	Vendor      string
	Version     string
	SpecVersion string
}
