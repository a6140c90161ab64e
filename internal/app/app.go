// Package app wires the loader, the periodic refresh loops and the terminal
// UI together. It is the composition root of the `tui` command.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/smokyabdulrahman/waktu-solat/internal/loader"
	"github.com/smokyabdulrahman/waktu-solat/internal/prefs"
	"github.com/smokyabdulrahman/waktu-solat/internal/scheduler"
	"github.com/smokyabdulrahman/waktu-solat/internal/slideshow"
	"github.com/smokyabdulrahman/waktu-solat/internal/tui"
)

// Options configure the application.
type Options struct {
	Loader    *loader.Loader
	Zone      string
	PrefsPath string // empty uses ~/.config/waktu-solat/prefs.toml
	Now       func() time.Time
	Logger    zerolog.Logger
}

// loop is one periodic refresh delivered to the UI as a message.
type loop struct {
	name  string
	every time.Duration
	msg   tea.Msg
}

var loops = []loop{
	{name: "countdown", every: time.Second, msg: tui.CountdownMsg{}},
	{name: "analog-clock", every: time.Second, msg: tui.AnalogClockMsg{}},
	{name: "digital-clock", every: time.Second, msg: tui.DigitalClockMsg{}},
	{name: "slideshow", every: slideshow.Interval, msg: tui.SlideMsg{}},
}

// sender is the part of *tea.Program the loops need.
type sender interface {
	Send(msg tea.Msg)
}

// Run boots the TUI until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	if opts.Loader == nil {
		return errors.New("app: loader is required")
	}

	path := opts.PrefsPath
	if path == "" {
		path = prefs.DefaultPath()
	}
	userPrefs, err := prefs.Load(path)
	if err != nil {
		opts.Logger.Warn().Err(err).Str("path", path).Msg("using default preferences")
	}

	m := tui.New(tui.Options{
		Context:   ctx,
		Loader:    opts.Loader,
		Zone:      opts.Zone,
		Now:       opts.Now,
		Prefs:     userPrefs,
		PrefsPath: path,
		Logger:    opts.Logger,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	sched, err := scheduler.New(opts.Logger)
	if err != nil {
		return err
	}
	if _, err := register(sched, p); err != nil {
		return err
	}
	sched.Start()
	defer func() {
		if err := sched.Shutdown(); err != nil {
			opts.Logger.Warn().Err(err).Msg("scheduler shutdown failed")
		}
	}()

	opts.Logger.Info().Str("zone", opts.Zone).Str("source", opts.Loader.Source()).Msg("starting tui")
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// register schedules every refresh loop against p.
func register(s *scheduler.Scheduler, p sender) ([]scheduler.Handle, error) {
	handles := make([]scheduler.Handle, 0, len(loops))
	for _, l := range loops {
		msg := l.msg
		h, err := s.Every(l.name, l.every, func() { p.Send(msg) })
		if err != nil {
			for _, prev := range handles {
				_ = prev.Cancel()
			}
			return nil, err
		}
		handles = append(handles, h)
	}
	return handles, nil
}
