package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"erasec/internal/pipeline"
)

const watchDebounce = 150 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch <unit.mp>...",
	Short: "Re-translate unit files whenever they change",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWatch,
}

func init() {
	addPassFlags(watchCmd)
	watchCmd.Flags().StringP("out-dir", "o", "", "directory for erased units (default: next to the input)")
	watchCmd.Flags().Bool("verify", false, "check that no generic types survive before writing")
	watchCmd.Flags().String("format", "pretty", "diagnostics format (pretty|short|json)")
	watchCmd.Flags().String("path-mode", "auto", "path display (auto|absolute|relative|basename)")
}

// watchSet maps watched file names back to the arguments they came from.
type watchSet struct {
	byPath map[string]string
	dirs   []string
}

func newWatchSet(args []string) (*watchSet, error) {
	ws := &watchSet{byPath: make(map[string]string, len(args))}
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %q: %w", arg, err)
		}
		ws.byPath[abs] = arg
		// каталог, а не файл: запись unitfile идёт через rename
		if dir := filepath.Dir(abs); !slices.Contains(ws.dirs, dir) {
			ws.dirs = append(ws.dirs, dir)
		}
	}
	return ws, nil
}

// match reports the input touched by ev, if any.
func (ws *watchSet) match(ev fsnotify.Event) (string, bool) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return "", false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return "", false
	}
	arg, ok := ws.byPath[abs]
	return arg, ok
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	out, err := readOutputOpts(cmd)
	if err != nil {
		return err
	}
	ws, err := newWatchSet(args)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	for _, dir := range ws.dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	base := pipeline.Request{Options: s.opts, MaxDiagnostics: s.maxDiag, OutDir: s.cfg.Output.Dir}
	if dir, _ := cmd.Flags().GetString("out-dir"); dir != "" {
		base.OutDir = dir
	}
	base.Verify, _ = cmd.Flags().GetBool("verify")

	run := func(inputs []string) error {
		req := base
		req.Inputs = inputs
		res, err := pipeline.Translate(ctx, &req)
		if err != nil {
			return err
		}
		if err := reportResult(cmd, s, out, &res); err != nil && !isExitSilent(err) {
			return err
		}
		return nil
	}
	if err := run(args); err != nil {
		return err
	}

	pending := make(map[string]struct{})
	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if arg, ok := ws.match(ev); ok {
				pending[arg] = struct{}{}
				timer.Reset(watchDebounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watch: %v\n", err)
		case <-timer.C:
			inputs := make([]string, 0, len(pending))
			for arg := range pending {
				inputs = append(inputs, arg)
			}
			clear(pending)
			slices.Sort(inputs)
			if err := run(inputs); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
		}
	}
}
