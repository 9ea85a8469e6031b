package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"erasec/internal/annot"
	"erasec/internal/tree"
	"erasec/internal/unitfile"
)

var positionsCmd = &cobra.Command{
	Use:   "positions <unit.mp>",
	Short: "Print the resolved targets of type annotations",
	Args:  cobra.ExactArgs(1),
	RunE:  runPositions,
}

func runPositions(cmd *cobra.Command, args []string) error {
	b, err := unitfile.Read(args[0])
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	for _, unit := range b.Units {
		var classes []*tree.Node
		tree.Inspect(unit, func(n *tree.Node, _ []*tree.Node) bool {
			if n.Kind == tree.KindClassDef {
				classes = append(classes, n)
			}
			return true
		})
		for _, cls := range classes {
			if err := annot.Positions(cls, b.Syms); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
		}

		var werr error
		tree.Inspect(unit, func(n *tree.Node, _ []*tree.Node) bool {
			d, ok := n.Data.(*tree.AnnotationData)
			if !ok || !d.TypeAnnotation || werr != nil {
				return werr == nil
			}
			path := "?"
			if f := b.Files.Get(n.Span.File); f != nil {
				path = f.Path
			}
			start, _ := b.Files.Resolve(n.Span)
			_, werr = fmt.Fprintf(w, "%s:%d:%d: @%s %s\n", path, start.Line, start.Col, d.Compound.Name, d.Position)
			return werr == nil
		})
		if werr != nil {
			return werr
		}
	}
	return nil
}
