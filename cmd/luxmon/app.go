package main

import (
	"context"
	"os"

	"github.com/luxmon/luxmon/pkg/config"
	"github.com/luxmon/luxmon/pkg/console"
	"github.com/luxmon/luxmon/pkg/detect"
	"github.com/luxmon/luxmon/pkg/idle"
	"github.com/luxmon/luxmon/pkg/inspect"
	"github.com/luxmon/luxmon/pkg/interfaces"
	"github.com/luxmon/luxmon/pkg/monitor"
)

// Dependencies holds all the dependencies for the application
type Dependencies struct {
	Config     *config.Config
	Light      interfaces.Light
	Inspector  interfaces.AppInspector
	Aggregator *detect.Aggregator
	Tracker    *idle.Tracker
	Printer    *console.Printer
	Monitor    *monitor.Monitor
}

// NewDependencies creates all dependencies with the given configuration and
// an already-open light device.
func NewDependencies(cfg *config.Config, lt interfaces.Light) *Dependencies {
	printer := console.NewPrinter(os.Stdout, os.Stderr, cfg.Debug)

	inspector := inspect.New()
	detectors := detect.DefaultDetectors(cfg.Browsers, cfg.DisabledDetectors)
	aggregator := detect.NewAggregator(detectors, printer.Debugf)
	tracker := idle.NewTracker(idle.NewSource(), cfg.IdleCacheTTL)

	mon := monitor.New(lt, inspector, aggregator, tracker, printer, monitor.Options{
		TickInterval:        cfg.TickInterval,
		TicksPerIdleRefresh: cfg.IdleTicksPerRefresh(),
		IdleThreshold:       cfg.IdleThreshold,
		OffThreshold:        cfg.OffThreshold,
		MinCallDuration:     cfg.MinCallDuration,
	}, printer.Debugf)

	return &Dependencies{
		Config:     cfg,
		Light:      lt,
		Inspector:  inspector,
		Aggregator: aggregator,
		Tracker:    tracker,
		Printer:    printer,
		Monitor:    mon,
	}
}

// Application represents the main application
type Application struct {
	deps *Dependencies
}

// NewApplication creates a new application with the given dependencies
func NewApplication(deps *Dependencies) *Application {
	return &Application{
		deps: deps,
	}
}

// Run drives the monitor loop until the context is canceled. The light is
// turned off and released on the way out.
func (a *Application) Run(ctx context.Context) error {
	return a.deps.Monitor.Run(ctx)
}
