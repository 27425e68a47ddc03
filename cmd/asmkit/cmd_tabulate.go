package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	asmkit "github.com/reoring/asmkit"
	"github.com/reoring/asmkit/internal/logging"
	"github.com/reoring/asmkit/json2csv"
)

type tabulateFlags struct {
	config   string
	out      string
	strict   bool
	parallel int
}

func newTabulateCmd() *cobra.Command {
	tf := &tabulateFlags{}
	cmd := &cobra.Command{
		Use:   "tabulate <document.json>",
		Short: "Flatten an ASM document into CSV tables and metadata files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTabulate(cmd, tf, args[0])
		},
	}
	f := cmd.Flags()
	f.StringVar(&tf.config, "config", "", "Mapper config file, YAML or JSON (required)")
	f.StringVar(&tf.out, "out", ".", "Output directory")
	f.BoolVar(&tf.strict, "strict", false, "Reject documents with duplicate keys")
	f.IntVar(&tf.parallel, "parallel", 4, "Number of output files written concurrently")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func runTabulate(cmd *cobra.Command, tf *tabulateFlags, docPath string) error {
	cfg, err := json2csv.LoadConfig(tf.config)
	if err != nil {
		return err
	}
	cfg.Logger = logging.New("json2csv")

	in, err := os.Open(docPath)
	if err != nil {
		return fmt.Errorf("open document: %w", err)
	}
	defer in.Close()
	opt := asmkit.DecodeOpt{OnDuplicateKey: asmkit.Warn, Logger: logging.New("decode")}
	if tf.strict {
		opt.OnDuplicateKey = asmkit.Error
	}
	doc, err := asmkit.DecodeDocument(in, opt)
	if err != nil {
		return fmt.Errorf("decode %s: %w", docPath, err)
	}

	outputs, err := json2csv.Convert(doc, cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(tf.out, 0o755); err != nil {
		return err
	}
	names := make([]string, 0, len(outputs))
	for n := range outputs {
		names = append(names, n)
	}
	sort.Strings(names)

	paths := make([]string, len(names))
	g, _ := errgroup.WithContext(cmd.Context())
	if tf.parallel > 0 {
		g.SetLimit(tf.parallel)
	}
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			path, err := writeOutput(tf.out, name, outputs[name])
			if err != nil {
				return fmt.Errorf("write %s: %w", name, err)
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	for _, p := range paths {
		fmt.Fprintln(w, p)
	}
	return nil
}

func writeOutput(dir, name string, o json2csv.Output) (string, error) {
	if o.Table == nil {
		path := filepath.Join(dir, name+".json")
		b, err := asmkit.MarshalIndent(o.Metadata)
		if err != nil {
			return "", err
		}
		return path, os.WriteFile(path, append(b, '\n'), 0o644)
	}
	path := filepath.Join(dir, name+".csv")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := o.Table.WriteCSV(f); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}
