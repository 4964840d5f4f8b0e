package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/1broseidon/saftbar/internal/config"
	"github.com/1broseidon/saftbar/internal/geometry"
	"github.com/1broseidon/saftbar/internal/render"
	"github.com/1broseidon/saftbar/internal/status"
	"github.com/1broseidon/saftbar/internal/text"
	"github.com/1broseidon/saftbar/internal/x11"
)

// sides pairs each alignment with its configured status producers.
type sides struct {
	left   []status.Producer
	center []status.Producer
	right  []status.Producer
}

// barState bundles everything a RandR change invalidates.
type barState struct {
	bar      *render.Bar
	monitors []render.Monitor
}

// run owns the render loop. Layout and drawing happen on this goroutine
// only; the X event reader and the refresh ticker just wake it up, so a
// draw pass never runs concurrently with anything else.
func run(logger *logrus.Logger, cfg *config.Config) error {
	log := logger.WithField("module", "loop")

	conn, err := x11.NewConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.SelectScreenChanges(); err != nil {
		return err
	}

	face, err := text.LoadFace(cfg.Font.Path, cfg.Font.Size)
	if err != nil {
		return err
	}
	defer face.Close()

	height := uint32(cfg.Height)
	if height == 0 {
		height = face.LineHeight()
	}
	log.Infof("bar height %dpx (font ascent+descent %dpx)", height, face.LineHeight())

	producers, err := resolveProducers(cfg)
	if err != nil {
		return err
	}
	style, fill, err := cfg.SeparatorShape()
	if err != nil {
		return err
	}
	builder := status.Builder{
		Style:  style,
		Fill:   fill,
		Fg:     cfg.Foreground(),
		Bg:     cfg.Background(),
		Accent: cfg.Accent(),
	}

	state, err := buildBar(conn, cfg, face, height)
	if err != nil {
		return err
	}
	defer func() {
		if state.bar != nil {
			state.bar.Close()
		}
	}()

	interval, err := cfg.UpdateEvery()
	if err != nil {
		return err
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	events := conn.Events()

	redraw := func() {
		if state.bar == nil {
			return
		}
		if err := drawFrame(state.bar, builder, producers, log); err != nil {
			log.Warnf("frame skipped: %v", err)
		}
	}
	redraw()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return fmt.Errorf("x11 connection closed")
			}
			switch ev.Kind {
			case x11.EventRedraw:
				redraw()
			case x11.EventButton:
				log.Debugf("button %d pressed at x=%d", ev.Button, ev.X)
			case x11.EventScreenChange:
				log.Info("display layout changed, rebuilding bar")
				if state.bar != nil {
					state.bar.Close()
					conn.DestroyMonitors(state.monitors)
				}
				state, err = buildBar(conn, cfg, face, height)
				if err != nil {
					return err
				}
				redraw()
			case x11.EventError:
				log.Warnf("%v", ev.Err)
			}
		case <-ticker.C:
			redraw()
		case sig := <-signals:
			log.Infof("received %s, shutting down", sig)
			return nil
		}
	}
}

func resolveProducers(cfg *config.Config) (sides, error) {
	left, err := status.ForNames(cfg.Segments.Left)
	if err != nil {
		return sides{}, err
	}
	center, err := status.ForNames(cfg.Segments.Center)
	if err != nil {
		return sides{}, err
	}
	right, err := status.ForNames(cfg.Segments.Right)
	if err != nil {
		return sides{}, err
	}
	return sides{left: left, center: center, right: right}, nil
}

// buildBar queries the current display layout and creates the bar over it.
// Zero usable monitors is not an error; the bar just has nothing to render
// until the layout changes.
func buildBar(conn *x11.Connection, cfg *config.Config, face *text.Face, height uint32) (barState, error) {
	rects, err := conn.OutputGeometries()
	if err != nil {
		return barState{}, err
	}
	regions := geometry.ResolveMonitors(rects)
	if len(regions) == 0 {
		return barState{}, nil
	}

	bottom := cfg.Position == config.PositionBottom
	monitors, backend, err := conn.CreateMonitors(regions, height, bottom, cfg.Instance)
	if err != nil {
		return barState{}, err
	}

	drawer := x11.NewTextDrawer(backend, face, height)
	bar, err := render.New(backend, drawer, monitors, height, cfg.Background())
	if err != nil {
		return barState{}, err
	}
	return barState{bar: bar, monitors: monitors}, nil
}

// drawFrame renders one complete frame on every monitor.
func drawFrame(bar *render.Bar, builder status.Builder, producers sides, log *logrus.Entry) error {
	if err := bar.Clear(); err != nil {
		return err
	}

	runs := []struct {
		align     render.Alignment
		producers []status.Producer
	}{
		{render.AlignLeft, producers.left},
		{render.AlignCenter, producers.center},
		{render.AlignRight, producers.right},
	}

	for monitor := range bar.Monitors() {
		for _, run := range runs {
			if len(run.producers) == 0 {
				continue
			}
			segments, errs := status.Collect(run.producers)
			for _, err := range errs {
				log.Debugf("segment: %v", err)
			}
			items := builder.Items(run.align, segments)
			if err := bar.Draw(monitor, run.align, items); err != nil {
				return err
			}
		}
	}

	if err := bar.Present(); err != nil {
		return err
	}
	return bar.Flush()
}
