package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	asmkit "github.com/reoring/asmkit"
	"github.com/reoring/asmkit/internal/logging"
	"github.com/reoring/asmkit/mapper/cellcounting"
	"github.com/reoring/asmkit/parsers/vicellblu"
)

func newVicellBluCmd(g *globalFlags) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "vicell-blu <export.csv>",
		Short: "Convert a Vi-CELL BLU export to an ASM cell-counting document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open export: %w", err)
			}
			defer f.Close()

			p := vicellblu.Parser{AuditUnusedFields: g.warnUnusedKeys, Logger: logging.New("vicellblu")}
			data, err := p.Parse(f, filepath.Base(args[0]))
			if err != nil {
				return err
			}
			model, err := cellcounting.Mapper{}.MapModel(data)
			if err != nil {
				return fmt.Errorf("map model: %w", err)
			}
			b, err := asmkit.MarshalIndent(model)
			if err != nil {
				return err
			}
			b = append(b, '\n')
			if out == "" {
				_, err = cmd.OutOrStdout().Write(b)
				return err
			}
			return os.WriteFile(out, b, 0o644)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "Write the document to this file instead of stdout")
	return cmd
}
