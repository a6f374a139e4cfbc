// ABOUTME: Daemon command wiring the scheduler, classroom client, and dispatcher
// ABOUTME: Handles shutdown signals and the SIGUSR1 debug trigger
package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/slack-go/slack"

	"github.com/harperreed/classwatch/classroom"
	"github.com/harperreed/classwatch/config"
	"github.com/harperreed/classwatch/watch"
)

// RunCommand starts the polling daemon. The scheduler only starts once the
// credential refresh succeeded and course discovery completed; SIGUSR1 fires
// one out-of-band cycle, SIGINT/SIGTERM shut down.
func RunCommand(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	checker, err := buildChecker(ctx, cfg)
	if err != nil {
		return err
	}

	scheduler := watch.NewScheduler(checker, cfg.CheckInterval())

	debug := make(chan os.Signal, 1)
	signal.Notify(debug, syscall.SIGUSR1)
	go func() {
		for range debug {
			scheduler.Trigger()
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		log.Println("shutting down...")
		cancel()
	}()

	log.Println("classwatch started")
	scheduler.Start(ctx)
	return nil
}

// buildChecker authorizes, discovers courses, and assembles one cycle
// runner. Any failure here is fatal to the command: the daemon never polls
// without a valid session.
func buildChecker(ctx context.Context, cfg *config.Config) (*watch.Checker, error) {
	ts, err := authorize(ctx, cfg)
	if err != nil {
		return nil, err
	}

	client, err := classroom.NewClient(ctx, cfg, ts)
	if err != nil {
		return nil, err
	}

	if err := client.LoadCourses(ctx); err != nil {
		return nil, err
	}
	if len(client.Courses()) == 0 {
		log.Println("warning: no courses matched the configured enrollment codes / link ids")
	} else {
		log.Printf("watching %d course(s)", len(client.Courses()))
	}

	if cfg.Slack.Channel == "" {
		log.Println("warning: no slack channel configured, notifications will be dropped")
	}

	dispatcher := watch.NewDispatcher(
		slack.New(cfg.Slack.BotToken),
		client,
		cfg.Slack.Channel,
		cfg.Slack.PingChannel,
		cfg.HasScope(config.ScopeDrive),
	)

	store := watch.NewSnapshotStore(watch.SnapshotPath())

	return watch.NewChecker(client, store, dispatcher, cfg.Location(), cfg.HasScope(config.ScopeCourseWork)), nil
}

// CheckCommand runs exactly one cycle and exits. Development convenience,
// same wiring as the daemon.
func CheckCommand(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()

	checker, err := buildChecker(ctx, cfg)
	if err != nil {
		return err
	}

	if err := checker.Run(ctx); err != nil {
		return fmt.Errorf("check cycle failed: %w", err)
	}

	fmt.Println("✓ Check complete")
	return nil
}
