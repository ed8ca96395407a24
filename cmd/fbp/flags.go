package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/viant/fbp"
)

const (
	commandRun      = "run"
	commandRuntime  = "runtime"
	commandRegister = "register"
)

var errUsage = errors.New("usage")

// CLIConfig holds command-line configuration
type CLIConfig struct {
	Command    string
	ConfigPath string
	LogLevel   string
	Translator string
	GraphURL   string
	Port       int
	User       string
	Label      string
	IP         string
	set        map[string]bool
}

// apply overrides config with explicitly set flags
func (c *CLIConfig) apply(config *fbp.Config) {
	if c.set["port"] {
		config.Runtime.Port = c.Port
	}
	if c.set["label"] {
		config.Runtime.Label = c.Label
	}
	if c.set["ip"] {
		config.Runtime.Host = c.IP
	}
	if c.set["user"] {
		config.Directory.User = c.User
	}
}

// parseArgs parses "[run] FILE", "runtime" or "register" with their flags
func parseArgs(args []string) (*CLIConfig, error) {
	cfg := &CLIConfig{Command: commandRun, set: map[string]bool{}}
	if len(args) > 0 {
		switch args[0] {
		case commandRun, commandRuntime, commandRegister:
			cfg.Command, args = args[0], args[1:]
		}
	}
	defaults := fbp.DefaultConfig()
	flags := flag.NewFlagSet(appName+" "+cfg.Command, flag.ContinueOnError)
	flags.StringVar(&cfg.ConfigPath, "config", os.Getenv("FBP_CONFIG"), "Path to configuration file (env: FBP_CONFIG)")
	flags.StringVar(&cfg.LogLevel, "log-level", getEnv("FBP_LOG_LEVEL", "info"), "Log level: debug, info, warn, error (env: FBP_LOG_LEVEL)")
	switch cfg.Command {
	case commandRun:
		flags.StringVar(&cfg.Translator, "translate", "", "External command translating .fbp files to JSON")
	case commandRuntime:
		flags.IntVar(&cfg.Port, "port", defaults.Runtime.Port, "Port to listen on")
	case commandRegister:
		flags.StringVar(&cfg.User, "user", "", "Flowhub user id (required)")
		flags.StringVar(&cfg.Label, "label", defaults.Runtime.Label, "Label shown in the directory")
		flags.StringVar(&cfg.IP, "ip", defaults.Runtime.Host, "Address the runtime is reachable at")
		flags.IntVar(&cfg.Port, "port", defaults.Runtime.Port, "Port the runtime listens on")
	}
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "Usage:\n  %[1]s [run] [flags] FILE\n  %[1]s runtime [flags]\n  %[1]s register -user USER [flags]\n\nFlags:\n", appName)
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, errUsage
		}
		return nil, err
	}
	flags.Visit(func(f *flag.Flag) { cfg.set[f.Name] = true })

	switch cfg.Command {
	case commandRun:
		if flags.NArg() != 1 {
			flags.Usage()
			return nil, fmt.Errorf("expected exactly one graph file, got %d", flags.NArg())
		}
		cfg.GraphURL = flags.Arg(0)
	case commandRegister:
		if cfg.User == "" {
			return nil, fmt.Errorf("register: -user is required")
		}
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
