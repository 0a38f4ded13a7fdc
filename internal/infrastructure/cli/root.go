package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/doeshing/termbot/internal/app"
	"github.com/doeshing/termbot/internal/application/dispatch"
	"github.com/doeshing/termbot/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command. The container is built after flag
// parsing so --config and --verbose take effect.
func NewRootCmd(ctx context.Context, opts Options) *cobra.Command {
	var (
		configPath string
		verbose    = opts.Verbose
		container  *app.Container
	)
	current := func() *app.Container { return container }

	root := &cobra.Command{
		Use:   "termbot",
		Short: "termbot - terminal chatbot with guarded shell access",
		Long:  "termbot mixes chat with a remote model and direct local actions: shell commands, file reads and writes, and system reports.",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			built, err := app.BuildContainer(cmd.Context(), app.Options{ConfigPath: configPath, Verbose: verbose})
			if err != nil {
				return err
			}
			container = built
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if container == nil {
				return nil
			}
			return container.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd, container)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetContext(ctx)

	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.termbot/config.yaml)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", opts.Verbose, "Enable debug logging on stderr")

	root.AddCommand(commands.NewHistoryCommand(current))
	root.AddCommand(commands.NewDoctorCommand(current))
	root.AddCommand(commands.NewVersionCommand())
	return root
}

func runREPL(cmd *cobra.Command, container *app.Container) error {
	if container == nil {
		return fmt.Errorf("container not initialized")
	}
	out := cmd.OutOrStdout()
	input := NewLineReader(os.Stdin, out)
	defer input.Close()

	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	width := 0
	if interactive {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
		}
	}

	dispatcher := container.NewDispatcher(app.Terminal{
		Input:     input,
		Output:    out,
		Confirmer: NewPrompter(input, out),
		Progress:  NewSpinner(os.Stderr, interactive),
	})
	loop := &dispatch.Loop{
		Dispatcher: dispatcher,
		Input:      input,
		Renderer: NewRenderer(
			container.Config.UI.Color && interactive,
			container.Config.ShouldRenderMarkdown() && interactive,
			width,
		),
		Output: out,
	}
	return loop.Run(cmd.Context())
}
