package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/snowball/internal/audio"
	"github.com/jmylchreest/snowball/internal/dbus"
	"github.com/jmylchreest/snowball/internal/notify"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Send the timer-finished notification now",
	Long: `Send the same notification the widget raises when a countdown ends.
Useful to check the notification server and alarm sound configuration.`,
	Args: cobra.NoArgs,
	RunE: runNotify,
}

func init() {
	rootCmd.AddCommand(notifyCmd)
}

func runNotify(cmd *cobra.Command, args []string) error {
	client := dbus.NewClient(logger)
	defer func() { _ = client.Close() }()

	info, err := client.ServerInformation(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to reach notification server: %w", err)
	}
	logger.Debug("notification server", "name", info.Name, "vendor", info.Vendor, "version", info.Version)

	player := audio.NewPlayer(logger)
	defer player.Close()
	player.SetVolume(float64(cfg.Alarm.Volume) / 100)

	n := notify.NewNotifier(client, player, cfg.Alarm, logger)
	n.TimerFinished(cmd.Context())
	if n.LastID() == 0 {
		return fmt.Errorf("notification was not shown")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "notification %d sent to %s\n", n.LastID(), info.Name)
	return nil
}
