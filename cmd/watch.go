package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/xqlint/formatter"
	"github.com/gnoswap-labs/xqlint/internal"
	tt "github.com/gnoswap-labs/xqlint/internal/types"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Lint query files again each time they are saved",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			args = []string{"."}
		}

		// --timeout does not apply; watch until interrupted
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		engine, err := newEngine()
		if err != nil {
			logger.Fatal("Failed to initialize lint engine", zap.Error(err))
		}
		if err := runWatch(ctx, engine, args); err != nil {
			logger.Fatal("Failed to watch", zap.Error(err))
		}
	},
}

func runWatch(ctx context.Context, engine *internal.Engine, dirs []string) error {
	err := engine.StartWatching(ctx, dirs, func(filename string, issues []tt.Issue) {
		if len(issues) == 0 {
			fmt.Printf("%s: no issues\n", filename)
			return
		}
		source, err := internal.ReadSourceCode(filename)
		if err != nil {
			logger.Error("Error reading source file", zap.String("file", filename), zap.Error(err))
			return
		}
		fmt.Print(formatter.GenerateFormattedIssue(issues, source))
	})
	if err != nil {
		return err
	}
	logger.Info("Watching", zap.Strings("dirs", dirs))
	fmt.Fprintf(os.Stderr, "Watching %s for changes, press Ctrl+C to stop\n", strings.Join(dirs, ", "))

	<-ctx.Done()
	return engine.StopWatching()
}
