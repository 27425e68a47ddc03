// asmkit converts instrument exports to ASM documents and tabulates ASM
// documents.
//
// Usage:
//
//	asmkit vicell-blu <export.csv> [-o model.json]
//	asmkit tabulate --config cfg.yaml --out dir <document.json>
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reoring/asmkit/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

type globalFlags struct {
	logLevel       string
	logFormat      string
	warnUnusedKeys bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "asmkit",
		Short: "Convert instrument exports to Allotrope Simple Model documents",
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logging.Init(logging.ParseLevel(g.logLevel), g.logFormat, cmd.ErrOrStderr())
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&g.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	pf.StringVar(&g.logFormat, "log-format", "text", "Log format: text or json")
	pf.BoolVar(&g.warnUnusedKeys, "warn-unused-keys", os.Getenv("WARN_UNUSED_KEYS") != "",
		"Warn about input fields no mapper consumed (default from WARN_UNUSED_KEYS)")

	root.AddCommand(newVicellBluCmd(g))
	root.AddCommand(newTabulateCmd())
	root.Version = version
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
