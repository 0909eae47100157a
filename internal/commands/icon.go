package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"journal/internal/icons"
)

func addIcon(topLevel *cobra.Command) {
	opts := icons.Options{}

	cmd := &cobra.Command{
		Use:   "icon NAME",
		Short: "Print an icon as SVG",
		Example: `
journal icon home
journal icon home --color "#ffffff" --size 32 > home.svg
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := icons.NewRegistry()
			if err != nil {
				return err
			}
			svg, err := registry.Render(args[0], opts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), svg)
			return err
		},
	}

	cmd.Flags().StringVar(&opts.Color, "color", icons.DefaultColor, "fill and stroke color")
	cmd.Flags().Float64Var(&opts.StrokeWidth, "stroke-width", icons.DefaultStrokeWidth, "stroke width")
	cmd.Flags().IntVar(&opts.Size, "size", icons.DefaultSize, "width and height in pixels")

	topLevel.AddCommand(cmd)
}
