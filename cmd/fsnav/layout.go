package main

import (
	"fmt"
	"io"
	"math"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/johndoe6345789/3dfsnav/config"
	"github.com/johndoe6345789/3dfsnav/layout"
	"github.com/johndoe6345789/3dfsnav/tree"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	dirColor    = color.New(color.FgRed, color.Bold)
	fileColor   = color.New(color.FgGreen)
	subtleColor = color.New(color.FgHiBlack)
)

func newLayoutCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "layout [path]",
		Short: "Print the spiral placement of a level",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			path := cfg.Tree.Start
			if len(args) == 1 {
				path = args[0]
			}
			src, err := loadSource(cfg)
			if err != nil {
				return err
			}
			printLayout(cmd.OutOrStdout(), src, tree.Clean(path), cfg)
			return nil
		},
	}
}

// printLayout writes one row per placed child of path
func printLayout(w io.Writer, src tree.Source, path string, cfg *config.Config) {
	opts := cfg.NavOptions()
	placed := layout.Place(tree.Materialize(src, path, opts.ChildLimit), opts.Layout)

	headerColor.Fprintf(w, "%s  (%d nodes, %s)\n", path, len(placed), opts.Layout.Variant)
	if len(placed) == 0 {
		subtleColor.Fprintln(w, "  empty level")
		return
	}

	subtleColor.Fprintf(w, "  %4s  %-24s %-4s %8s %8s %8s %8s %8s\n", "#", "name", "kind", "angle", "radius", "x", "y", "z")
	for i, p := range placed {
		c := fileColor
		if p.Node.IsDir() {
			c = dirColor
		}
		name := c.Sprintf("%-24s", p.Node.Name)
		fmt.Fprintf(w, "  %4d  %s %-4s %8.3f %8.3f %8.3f %8.3f %8.3f\n",
			i, name, p.Node.Kind, math.Mod(layout.Angle(i), 2*math.Pi),
			layout.RadialDistance(i, len(placed), opts.Layout.Radius),
			p.Pos.X, p.Pos.Y, p.Pos.Z)
	}
}
