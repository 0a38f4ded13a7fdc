package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/doeshing/termbot/internal/infrastructure/cli"
	"github.com/doeshing/termbot/internal/ports"
)

func main() {
	// A missing .env is normal; keys may come from the environment.
	_ = godotenv.Load()

	ctx := context.Background()
	root := cli.NewRootCmd(ctx, cli.Options{Verbose: isVerbose()})

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, ports.ErrInterrupted) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func isVerbose() bool {
	return strings.EqualFold(os.Getenv("TERMBOT_DEBUG"), "1") || strings.EqualFold(os.Getenv("TERMBOT_DEBUG"), "true")
}
