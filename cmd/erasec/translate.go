package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"erasec/internal/diag"
	"erasec/internal/diagfmt"
	"erasec/internal/pipeline"
)

var translateCmd = &cobra.Command{
	Use:   "translate <unit.mp>...",
	Short: "Erase generic types from unit files",
	Long: `Load attributed unit files, erase generic types, insert casts and bridge
methods, and write each result next to its input as <name>.erased.mp`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTranslate,
}

func init() {
	addPassFlags(translateCmd)
	translateCmd.Flags().StringP("out-dir", "o", "", "directory for erased units (default: next to the input)")
	translateCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	translateCmd.Flags().Bool("verify", false, "check that no generic types survive before writing")
	translateCmd.Flags().Bool("dry-run", false, "translate without writing output")
	translateCmd.Flags().Int("jobs", 0, "parallel unit loads (0 = GOMAXPROCS)")
	translateCmd.Flags().String("format", "pretty", "diagnostics format (pretty|short|json)")
	translateCmd.Flags().String("path-mode", "auto", "path display (auto|absolute|relative|basename)")
}

// addPassFlags registers the flags that override erasec.toml.
func addPassFlags(cmd *cobra.Command) {
	cmd.Flags().String("target", "", "target version (overrides [target].version)")
	cmd.Flags().Bool("no-bridges", false, "do not synthesize bridge methods")
}

type outputOpts struct {
	format  string
	pretty  diagfmt.PrettyOpts
	jsonOut diagfmt.JSONOpts
}

func readOutputOpts(cmd *cobra.Command) (outputOpts, error) {
	format, _ := cmd.Flags().GetString("format")
	format = strings.ToLower(format)
	if format != "pretty" && format != "json" && format != "short" {
		return outputOpts{}, fmt.Errorf("unsupported format %q (must be pretty, short or json)", format)
	}
	pathModeStr, _ := cmd.Flags().GetString("path-mode")
	pathMode, ok := diagfmt.ParsePathMode(pathModeStr)
	if !ok {
		return outputOpts{}, fmt.Errorf("invalid --path-mode %q", pathModeStr)
	}
	wd, _ := os.Getwd()
	return outputOpts{
		format: format,
		pretty: diagfmt.PrettyOpts{
			Color:     !color.NoColor,
			PathMode:  pathMode,
			BaseDir:   wd,
			ShowNotes: true,
		},
		jsonOut: diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			BaseDir:          wd,
			IncludeNotes:     true,
		},
	}, nil
}

func runTranslate(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	out, err := readOutputOpts(cmd)
	if err != nil {
		return err
	}
	uiValue, _ := cmd.Flags().GetString("ui")
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	req := &pipeline.Request{
		Inputs:         args,
		OutDir:         s.cfg.Output.Dir,
		Options:        s.opts,
		MaxDiagnostics: s.maxDiag,
	}
	if dir, _ := cmd.Flags().GetString("out-dir"); dir != "" {
		req.OutDir = dir
	}
	req.Verify, _ = cmd.Flags().GetBool("verify")
	req.NoWrite, _ = cmd.Flags().GetBool("dry-run")
	req.Jobs, _ = cmd.Flags().GetInt("jobs")

	var res pipeline.Result
	if !s.quiet && out.format == "pretty" && shouldUseTUI(mode) {
		res, err = runTranslateWithUI(cmd.Context(), "erasing", req)
	} else {
		res, err = pipeline.Translate(cmd.Context(), req)
	}
	if err != nil {
		return err
	}
	return reportResult(cmd, s, out, &res)
}

func reportResult(cmd *cobra.Command, s *settings, out outputOpts, res *pipeline.Result) error {
	if err := printDiagnostics(cmd.OutOrStdout(), cmd.ErrOrStderr(), out, res); err != nil {
		return err
	}
	stdout := cmd.OutOrStdout()
	if !s.quiet && out.format == "pretty" {
		for i := range res.Units {
			if u := &res.Units[i]; u.Output != "" {
				fmt.Fprintf(stdout, "wrote %s\n", u.Output)
			}
		}
		st := res.Stats
		fmt.Fprintf(stdout, "erased %d unit(s): %d classes, %d casts, %d bridges\n",
			len(res.Units), st.Classes, st.Casts, st.Bridges)
	}
	if s.timings {
		if err := printStageTimings(stdout, res.Timings); err != nil {
			return err
		}
	}
	if res.Failed() {
		return &exitError{msg: "translation failed"}
	}
	return nil
}

func printDiagnostics(stdout, stderr io.Writer, out outputOpts, res *pipeline.Result) error {
	for i := range res.Units {
		u := &res.Units[i]
		u.Bag.Sort()
		switch out.format {
		case "json":
			if err := diagfmt.JSON(stdout, u.Bag, u.Files(), out.jsonOut); err != nil {
				return err
			}
			continue
		case "short":
			if text := diag.FormatShortDiagnostics(u.Bag.Items(), u.Files(), true); text != "" {
				fmt.Fprintln(stderr, text)
			}
		default:
			if err := diagfmt.Pretty(stderr, u.Bag, u.Files(), out.pretty); err != nil {
				return err
			}
		}
		if err := u.Unreported(); err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", u.Path, err)
		}
	}
	return nil
}
