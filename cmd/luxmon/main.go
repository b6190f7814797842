package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	flag "github.com/spf13/pflag"

	"github.com/luxmon/luxmon/pkg/config"
	"github.com/luxmon/luxmon/pkg/light"
)

func main() {
	var (
		brightness int
		debug      bool
		configPath string
	)

	flag.IntVar(&brightness, "brightness", 75, "LED brightness (0-100)")
	flag.BoolVar(&debug, "debug", false, "Log every detector outcome, including negatives")
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	interactive := isatty.IsTerminal(os.Stdin.Fd())
	reader := bufio.NewReader(os.Stdin)

	if flag.CommandLine.Changed("brightness") {
		cfg.Brightness = config.ClampBrightness(brightness)
		fmt.Printf("Brightness set to %d%% (from command line)\n", cfg.Brightness)
	} else if interactive {
		cfg.Brightness = promptBrightness(reader, cfg.Brightness)
	}

	if flag.CommandLine.Changed("debug") {
		cfg.Debug = debug
	} else if interactive {
		cfg.Debug = promptDebug(reader)
	}

	// The light is the whole point; without it there is no degraded mode
	// worth running.
	lt, err := light.Open(cfg.Brightness)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	deps := NewDependencies(cfg, lt)
	deps.Printer.Banner(cfg.Brightness, cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := NewApplication(deps)
	if err := app.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nLight turned off. Goodbye!")
}

// promptBrightness asks for a brightness level, falling back to the default
// on empty or invalid input.
func promptBrightness(reader *bufio.Reader, def int) int {
	fmt.Printf("Set LED brightness (0-100, default %d, or press Enter): ", def)

	input, err := reader.ReadString('\n')
	if err != nil {
		fmt.Printf("Using default brightness: %d%%\n", def)
		return def
	}

	input = strings.TrimSpace(input)
	if input == "" {
		fmt.Printf("Using default brightness: %d%%\n", def)
		return def
	}

	value, err := strconv.Atoi(input)
	if err != nil {
		fmt.Printf("Invalid input. Using default brightness: %d%%\n", def)
		return def
	}

	value = config.ClampBrightness(value)
	fmt.Printf("Brightness set to %d%%\n", value)
	return value
}

// promptDebug asks whether to enable debug mode.
func promptDebug(reader *bufio.Reader) bool {
	fmt.Print("Enable debug mode to see detailed detection info? (y/n): ")

	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	if strings.ToLower(strings.TrimSpace(input)) == "y" {
		fmt.Println("Debug mode enabled")
		return true
	}
	return false
}
