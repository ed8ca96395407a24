// Package main implements the fbp command: run a graph, serve the control
// protocol, or register a runtime with the directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/viant/fbp"
	"github.com/viant/fbp/service/translator"
)

const appName = "fbp"

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cli, err := parseArgs(args)
	if err != nil {
		return err
	}
	logger := setupLogger(cli.LogLevel)

	config := fbp.DefaultConfig()
	if cli.ConfigPath != "" {
		ctx, cancel := context.WithCancel(context.Background())
		config, err = fbp.LoadConfig(ctx, cli.ConfigPath)
		cancel()
		if err != nil {
			return err
		}
	}
	cli.apply(config)

	options := []fbp.Option{fbp.WithConfig(config), fbp.WithLogger(logger)}
	if cli.Translator != "" {
		options = append(options, fbp.WithTranslator(translator.New(translator.WithCommand(cli.Translator))))
	}
	srv, err := fbp.New(options...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cli.Command {
	case commandRuntime:
		runtime := srv.NewRuntime()
		logger.Info("runtime started", "addr", runtime.Addr(), "id", runtime.Info().ID)
		return runtime.ListenAndServe(ctx)
	case commandRegister:
		registration, err := srv.Register(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("runtime registered: %s\n", registration.ID)
		return nil
	}
	net, err := srv.RunGraph(ctx, cli.GraphURL)
	if err != nil {
		return err
	}
	logger.Debug("graph completed", "graph", net.Graph().Name, "run", net.RunID())
	return nil
}
