package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"prefs-generator/internal/analyze"
	"prefs-generator/internal/common"
	"prefs-generator/internal/diagnostic"
	"prefs-generator/internal/gen"
	"prefs-generator/internal/logctx"
)

// errDiagnostics makes the process exit with status 1 once the diagnostics
// have been printed.
var errDiagnostics = errors.New("generation reported errors")

func newGenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen [packages]",
		Short: "Generate implementations and write them next to their packages",
		Example: `  prefs-generator gen ./...
  //go:generate go run prefs-generator/cmd/prefs-generator gen .`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), cmd.ErrOrStderr(), args, true)
		},
	}

	cmd.Flags().String("out", "", "write every file into this directory instead")
	_ = a.v.BindPFlag("out", cmd.Flags().Lookup("out"))

	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [packages]",
		Short: "Report diagnostics without writing files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), cmd.ErrOrStderr(), args, false)
		},
	}
}

// run generates every annotated interface of patterns. Files are written
// even when error diagnostics were raised; the run still fails afterwards.
func (a *app) run(ctx context.Context, w io.Writer, patterns []string, write bool) error {
	if common.IsEmpty(patterns) {
		patterns = []string{"."}
	}

	ctx = logctx.WithLogger(ctx, a.logger)

	genConfig, err := a.cfg.Generator()
	if err != nil {
		return err
	}

	loadConfig := a.cfg.Analyzer()

	table, err := analyze.NewAnalyzer(loadConfig).LoadPackages(ctx, patterns...)
	if err != nil {
		return err
	}

	resolver := analyze.ChainResolver{
		analyze.NewLocalResolver(table),
		analyze.NewExternalResolver(loadConfig),
	}

	result, err := gen.NewGenerator(genConfig, resolver).Generate(ctx, table)
	if err != nil {
		return err
	}

	printDiagnostics(w, &result.Diagnostics)

	if write {
		if err := a.emit(ctx, result.Files); err != nil {
			return err
		}
	}

	a.logger.Info("generation finished",
		"files", len(result.Files),
		"errors", len(result.Diagnostics.Errors),
		"warnings", len(result.Diagnostics.Warnings),
		"written", write)

	if result.Diagnostics.HasErrors() {
		return errDiagnostics
	}

	return nil
}

func (a *app) emit(ctx context.Context, files []gen.GeneratedFile) error {
	if a.cfg.Out != "" {
		byName := make(map[string][]gen.GeneratedFile)
		for _, f := range files {
			byName[f.Filename] = append(byName[f.Filename], f)
		}

		for name, same := range byName {
			if common.IsMultiple(same) {
				return fmt.Errorf("%s is generated by %s and %s; drop --out", name, same[0].Interface, same[1].Interface)
			}
		}
	}

	return gen.EmitAll(ctx, gen.DirEmitter{Dir: a.cfg.Out}, files)
}

func printDiagnostics(w io.Writer, diags *diagnostic.Diagnostics) {
	all := diags.All()
	if common.IsEmpty(all) {
		return
	}

	for _, d := range all {
		fmt.Fprintln(w, d.String())
	}

	fmt.Fprintf(w, "%s, %s\n", count(diags.Errors, "error"), count(diags.Warnings, "warning"))
}

func count(diags []diagnostic.Diagnostic, noun string) string {
	if common.IsSingle(diags) {
		return "1 " + noun
	}

	return fmt.Sprintf("%d %ss", len(diags), noun)
}
