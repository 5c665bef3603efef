package notify

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/snowball/internal/config"
	"github.com/jmylchreest/snowball/internal/dbus"
)

type fakeSender struct {
	sent   []*dbus.Notification
	closed []uint32
	id     uint32
	err    error
}

func (f *fakeSender) CloseNotification(_ context.Context, id uint32) error {
	f.closed = append(f.closed, id)
	return nil
}

func (f *fakeSender) Notify(_ context.Context, n *dbus.Notification) (uint32, error) {
	f.sent = append(f.sent, n)
	return f.id, f.err
}

type fakePlayer struct {
	played []string
	err    error
}

func (f *fakePlayer) Play(path string) error {
	f.played = append(f.played, path)
	return f.err
}

func TestNotification_FromDefaults(t *testing.T) {
	n := NewNotifier(nil, nil, config.DefaultWidgetConfig().Alarm, nil)
	msg := n.Notification()

	assert.Equal(t, "雪球", msg.Summary)
	assert.Equal(t, "定时任务结束！", msg.Body)
	assert.Equal(t, "thunderbird", msg.AppIcon)
	assert.Equal(t, "thunderbird", msg.AppName)
	assert.Equal(t, "Alarm", msg.SoundName())
	assert.Equal(t, DesktopEntry, msg.DesktopEntry())
	assert.Equal(t, dbus.UrgencyNormal, msg.Urgency())
	assert.Equal(t, dbus.ExpireNever, msg.ExpireTimeout)
}

func TestNotification_NoSoundNameHint(t *testing.T) {
	alarm := config.DefaultWidgetConfig().Alarm
	alarm.SoundName = ""
	msg := NewNotifier(nil, nil, alarm, nil).Notification()

	_, ok := msg.Hints["sound-name"]
	assert.False(t, ok)
}

func TestTimerFinished_Sends(t *testing.T) {
	sender := &fakeSender{id: 7}
	alarm := config.DefaultWidgetConfig().Alarm
	alarm.SoundFile = "/tmp/alarm.wav"
	player := &fakePlayer{}
	n := NewNotifier(sender, player, alarm, nil)

	n.TimerFinished(context.Background())

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "雪球", sender.sent[0].Summary)
	assert.Equal(t, uint32(7), n.LastID())
	assert.Equal(t, []string{"/tmp/alarm.wav"}, player.played)
}

func TestTimerFinished_FailureIsRecovered(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	sender := &fakeSender{err: errors.New("org.freedesktop.DBus.Error.ServiceUnknown")}
	player := &fakePlayer{}
	alarm := config.DefaultWidgetConfig().Alarm
	alarm.SoundFile = "/tmp/alarm.wav"
	n := NewNotifier(sender, player, alarm, logger)

	assert.NotPanics(t, func() { n.TimerFinished(context.Background()) })
	assert.Contains(t, buf.String(), "failed to show timer notification")
	assert.Equal(t, uint32(0), n.LastID())
	assert.Len(t, player.played, 1, "sound still plays when the notification fails")
}

func TestTimerFinished_NoSoundFile(t *testing.T) {
	player := &fakePlayer{}
	n := NewNotifier(&fakeSender{}, player, config.DefaultWidgetConfig().Alarm, nil)

	n.TimerFinished(context.Background())
	assert.Empty(t, player.played)
}

func TestTimerFinished_SoundFailureLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	alarm := config.DefaultWidgetConfig().Alarm
	alarm.SoundFile = "/missing.ogg"
	n := NewNotifier(nil, &fakePlayer{err: errors.New("no such file")}, alarm, logger)

	n.TimerFinished(context.Background())
	assert.Contains(t, buf.String(), "failed to play alarm sound")
}

func TestDismiss(t *testing.T) {
	sender := &fakeSender{id: 12}
	n := NewNotifier(sender, nil, config.DefaultWidgetConfig().Alarm, nil)

	n.Dismiss(context.Background())
	assert.Empty(t, sender.closed, "nothing shown yet")

	n.TimerFinished(context.Background())
	n.Dismiss(context.Background())
	n.Dismiss(context.Background())

	assert.Equal(t, []uint32{12}, sender.closed)
	assert.Equal(t, uint32(0), n.LastID())
}

func TestTimerFinished_ReplacesPrevious(t *testing.T) {
	sender := &fakeSender{id: 3}
	n := NewNotifier(sender, nil, config.DefaultWidgetConfig().Alarm, nil)

	n.TimerFinished(context.Background())
	n.TimerFinished(context.Background())

	require.Len(t, sender.sent, 2)
	assert.Equal(t, uint32(0), sender.sent[0].ReplacesID)
	assert.Equal(t, uint32(3), sender.sent[1].ReplacesID)
}
