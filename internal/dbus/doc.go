// Package dbus is a client for the org.freedesktop.Notifications D-Bus
// interface. It sends Notify and CloseNotification calls to whatever
// notification daemon owns the bus name on the session bus.
package dbus
