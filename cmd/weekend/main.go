package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/MazharElstub/The-Weekend-sub002/internal/app"
	"github.com/MazharElstub/The-Weekend-sub002/internal/cache"
	"github.com/MazharElstub/The-Weekend-sub002/internal/config"
	"github.com/MazharElstub/The-Weekend-sub002/internal/ics"
	"github.com/MazharElstub/The-Weekend-sub002/internal/log"
	"github.com/MazharElstub/The-Weekend-sub002/internal/remote"
	"github.com/MazharElstub/The-Weekend-sub002/internal/share"
	"github.com/MazharElstub/The-Weekend-sub002/internal/syncer"
	"github.com/MazharElstub/The-Weekend-sub002/internal/update"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "weekend failed: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "weekend",
		Short: "Plan and protect your weekends from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(configPath)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath(), "path to the config file")

	root.AddCommand(newExportCmd(&configPath))
	root.AddCommand(newShareCmd(&configPath))
	root.AddCommand(newSyncRetryCmd(&configPath))
	return root
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "weekend.yaml"
	}
	return filepath.Join(home, ".weekend", "config.yaml")
}

// session wires the full client stack from a config file. The access token
// and user id come from the environment so the config file stays free of
// credentials.
type session struct {
	cfg    *config.Config
	loc    *time.Location
	app    *app.AppState
	engine *syncer.Engine
	coord  *cache.Coordinator
	inbox  *share.Inbox
}

func openSession(configPath string) (*session, error) {
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log.SetLevel(log.Level(cfg.LogLevel))

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	store, err := cache.NewStore(cfg.CacheDir())
	if err != nil {
		return nil, err
	}
	coord := cache.NewCoordinator(store, time.Duration(cfg.DebounceMillis)*time.Millisecond)
	queue := syncer.NewQueue(store, coord)

	client := remote.NewClient(cfg.Remote.BaseURL, cfg.Remote.APIKey)
	client.SetAccessToken(os.Getenv("WEEKEND_ACCESS_TOKEN"))
	engine := syncer.NewEngine(queue, client)
	engine.SetBackoff(
		time.Duration(cfg.BackoffBaseSeconds)*time.Second,
		time.Duration(cfg.BackoffMaxSeconds)*time.Second,
	)

	inbox, err := share.OpenInbox(cfg.InboxPath())
	if err != nil {
		return nil, err
	}

	a := app.New(app.Options{
		Location: loc,
		Store:    store,
		Coord:    coord,
		Queue:    queue,
		Engine:   engine,
		Remote:   client,
		Inbox:    inbox,
	})
	if userID := os.Getenv("WEEKEND_USER_ID"); userID != "" {
		a.SignIn(userID)
	}

	return &session{cfg: cfg, loc: loc, app: a, engine: engine, coord: coord, inbox: inbox}, nil
}

func (s *session) close() {
	if err := s.coord.Close(); err != nil {
		log.Error("main: flush cache coordinator", err)
	}
	if err := s.inbox.Close(); err != nil {
		log.Error("main: close share inbox", err)
	}
}

func runTUI(configPath string) error {
	s, err := openSession(configPath)
	if err != nil {
		return err
	}
	defer s.close()

	s.engine.Start()
	defer s.engine.Stop()

	if s.app.IsSignedIn() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := s.app.RefreshFromRemote(ctx); err != nil {
			log.Error("main: initial refresh", err)
		}
		cancel()
	}

	// Pending operations stranded by long offline stretches get a forced
	// retry on the configured cadence.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(s.cfg.RetryCron, func() {
		if err := s.app.ForceRetrySync("scheduled"); err != nil {
			log.Error("main: scheduled sync retry", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule sync retries: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	program := tea.NewProgram(update.NewModel(s.app, s.loc))
	_, err = program.Run()
	return err
}

func newExportCmd(configPath *string) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export planned weekend events as an iCalendar file",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(*configPath)
			if err != nil {
				return err
			}
			defer s.close()

			serialized, err := ics.Export(s.app.EventsForSelectedCalendar(), s.loc, time.Now())
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				fmt.Fprint(cmd.OutOrStdout(), serialized)
				return nil
			}
			return os.WriteFile(out, []byte(serialized), 0o644)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file, or - for stdout")
	return cmd
}

func newSyncRetryCmd(configPath *string) *cobra.Command {
	var wait time.Duration

	cmd := &cobra.Command{
		Use:   "sync-retry",
		Short: "Force an immediate retry of all pending sync operations",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(*configPath)
			if err != nil {
				return err
			}
			defer s.close()

			s.engine.Start()
			defer s.engine.Stop()
			if err := s.app.ForceRetrySync("cli"); err != nil {
				return err
			}

			deadline := time.Now().Add(wait)
			for time.Now().Before(deadline) {
				if s.app.PendingOperationCount() == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "all pending operations confirmed")
					return nil
				}
				time.Sleep(200 * time.Millisecond)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d operation(s) still pending\n", s.app.PendingOperationCount())
			return nil
		},
	}
	cmd.Flags().DurationVar(&wait, "wait", 30*time.Second, "how long to wait for confirmations")
	return cmd
}

func newShareCmd(configPath *string) *cobra.Command {
	var text, url string

	cmd := &cobra.Command{
		Use:   "share",
		Short: "Stage a shared text or link as an add-plan prefill",
		RunE: func(cmd *cobra.Command, args []string) error {
			if text == "" && url == "" {
				return fmt.Errorf("share requires --text or --url")
			}
			s, err := openSession(*configPath)
			if err != nil {
				return err
			}
			defer s.close()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			id, err := s.app.HandleShare(ctx, text, url, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "staged share %s\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "shared text")
	cmd.Flags().StringVar(&url, "url", "", "shared link")
	return cmd
}
