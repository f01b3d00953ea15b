package cli

import (
	"context"
	"errors"
	"fmt"
	"github.com/MatthiasKunnen/gnome-wallpaper/internal/config"
	"github.com/MatthiasKunnen/gnome-wallpaper/pkg/screenlock"
	"github.com/spf13/cobra"
	"io"
	"os/signal"
	"syscall"
	"time"
)

var (
	screenLockTimeoutMs int64
	screenLockBackend   string
	screenLockSession   string
)

func init() {
	flags := screenLockCmd.Flags()
	flags.Int64Var(&screenLockTimeoutMs, "timeout", -1, "reply timeout in milliseconds (negative uses the configured default)")
	flags.StringVar(&screenLockBackend, "backend", "", "gnome, freedesktop or logind (overrides the config)")
	flags.StringVar(&screenLockSession, "session", "", "logind session id (defaults to XDG_SESSION_ID)")

	rootCmd.AddCommand(screenLockCmd)
	rootCmd.AddCommand(watchScreenLockCmd)
}

var screenLockCmd = &cobra.Command{
	Use:   "screenlock",
	Short: "Print true when the screen is locked, false otherwise",
	Args:  cobra.NoArgs,
	RunE:  runScreenLock,
}

var watchScreenLockCmd = &cobra.Command{
	Use:   "watch-screenlock",
	Short: "Print the screen lock state every time it changes, until interrupted",
	Args:  cobra.NoArgs,
	RunE:  runWatchScreenLock,
}

// newQuerier creates the Querier selected by the config. No bus is contacted until the first
// query. Closing the returned closer releases the bus connection.
func newQuerier(sl config.ScreenLockConfig) (screenlock.Querier, io.Closer, error) {
	switch sl.Backend {
	case config.BackendLogind:
		q, err := screenlock.NewLogindQuerier(sl.SessionID)
		if err != nil {
			return nil, nil, err
		}
		if sl.TimeoutMs > 0 {
			return timeoutQuerier{q, sl.Timeout()}, q, nil
		}
		return q, q, nil
	case config.BackendFreedesktop:
		c := screenlock.New(screenlock.Options{
			Service: screenlock.FreedesktopScreenSaver,
			Timeout: sl.Timeout(),
			Logger:  &logger,
		})
		return c, c, nil
	default:
		c := screenlock.New(screenlock.Options{
			Timeout: sl.Timeout(),
			Logger:  &logger,
		})
		return c, c, nil
	}
}

// timeoutQuerier replaces the default timeout of a Querier with the configured one.
type timeoutQuerier struct {
	screenlock.Querier
	timeout time.Duration
}

func (q timeoutQuerier) Active(ctx context.Context, timeout time.Duration) (bool, error) {
	if timeout < 0 {
		timeout = q.timeout
	}
	return q.Querier.Active(ctx, timeout)
}

func screenLockConfig() (config.ScreenLockConfig, error) {
	sl := cfg.ScreenLock
	if screenLockBackend != "" {
		sl.Backend = screenLockBackend
	}
	if screenLockSession != "" {
		sl.SessionID = screenLockSession
	}

	overridden := *cfg
	overridden.ScreenLock = sl
	if err := overridden.Validate(); err != nil {
		return sl, err
	}

	return sl, nil
}

func runScreenLock(cmd *cobra.Command, _ []string) error {
	sl, err := screenLockConfig()
	if err != nil {
		return err
	}

	q, closer, err := newQuerier(sl)
	if err != nil {
		return err
	}
	defer closer.Close()

	active, err := q.Active(cmd.Context(), screenlock.MillisTimeout(screenLockTimeoutMs))
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), active)
	return nil
}

func runWatchScreenLock(cmd *cobra.Command, _ []string) error {
	sl, err := screenLockConfig()
	if err != nil {
		return err
	}
	if sl.Backend == config.BackendLogind {
		return errors.New("watch-screenlock requires the gnome or freedesktop backend")
	}

	q, closer, err := newQuerier(sl)
	if err != nil {
		return err
	}
	defer closer.Close()
	client := q.(*screenlock.Client)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	activeSignal := make(chan bool, 1)
	if err := client.AddActiveSignal(activeSignal); err != nil {
		return err
	}

	lost := client.Disconnected()

	out := cmd.OutOrStdout()
	for {
		select {
		case <-lost:
			return errors.New("session bus connection lost")
		case active := <-activeSignal:
			logger.Info().Bool("active", active).Msg("screen saver state changed")
			fmt.Fprintln(out, active)
		case <-ctx.Done():
			return nil
		}
	}
}
