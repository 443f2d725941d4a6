package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
)

func main() {
	var cli CLI
	parser := kong.Must(&cli,
		kong.Name("unsplash"),
		kong.Description("Browse Unsplash from the terminal."),
		kong.UsageOnError(),
	)
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := initializeApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to wire application: %v\n", err)
		os.Exit(1)
	}

	err = kctx.Run(&runContext{ctx: ctx, app: app, out: os.Stdout})
	app.Close()
	cleanup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", describeError(err))
		os.Exit(1)
	}
}
