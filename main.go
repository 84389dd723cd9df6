package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "go.uber.org/automaxprocs"

	"github.com/peppeocchi/zohoreports-sdk/cmd/commands"
)

var version = "Not an official release. Get the latest release from the github repo."

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := 0
	if err := commands.NewApp(version).RunContext(ctx, os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		exitCode = 1
	}
	cancel()
	os.Exit(exitCode)
}
