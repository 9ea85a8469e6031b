package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"erasec/internal/pipeline"
	"erasec/internal/tree"
	"erasec/internal/unitfile"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <unit.mp>",
	Short: "Print the trees of a unit file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func init() {
	addPassFlags(dumpCmd)
	dumpCmd.Flags().Bool("erased", false, "translate before printing")
	dumpCmd.Flags().Bool("types", false, "annotate declarations with their types")
	dumpCmd.Flags().String("format", "pretty", "diagnostics format (pretty|short|json)")
	dumpCmd.Flags().String("path-mode", "auto", "path display (auto|absolute|relative|basename)")
}

func runDump(cmd *cobra.Command, args []string) error {
	erased, _ := cmd.Flags().GetBool("erased")
	showTypes, _ := cmd.Flags().GetBool("types")
	printOpts := tree.PrintOptions{ShowTypes: showTypes}

	if !erased {
		b, err := unitfile.Read(args[0])
		if err != nil {
			return err
		}
		return printBundle(cmd, b, printOpts)
	}

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	out, err := readOutputOpts(cmd)
	if err != nil {
		return err
	}
	res, err := pipeline.Translate(cmd.Context(), &pipeline.Request{
		Inputs:         args,
		Options:        s.opts,
		MaxDiagnostics: s.maxDiag,
		NoWrite:        true,
	})
	if err != nil {
		return err
	}
	if err := printDiagnostics(cmd.OutOrStdout(), cmd.ErrOrStderr(), out, &res); err != nil {
		return err
	}
	u := &res.Units[0]
	if u.Failed() {
		return &exitError{msg: "translation failed"}
	}
	return printBundle(cmd, u.Bundle, printOpts)
}

func printBundle(cmd *cobra.Command, b *unitfile.Bundle, opts tree.PrintOptions) error {
	w := cmd.OutOrStdout()
	for i, unit := range b.Units {
		if len(b.Units) > 1 {
			if _, err := fmt.Fprintf(w, "// unit %d\n", i); err != nil {
				return err
			}
		}
		if err := tree.Print(w, unit, b.Syms, opts); err != nil {
			return err
		}
	}
	return nil
}
