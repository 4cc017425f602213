package cli

import (
	"github.com/spf13/cobra"

	"studyfortress/internal/catalog"
)

func newCatalogCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the folder catalog as YAML",
		Long: `Prints the catalog the server would load: the embedded default, or the
file named by catalogPath. Edit the output and point catalogPath at it to
change the seeded folders.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(g.cfg.CatalogPath)
			if err != nil {
				return err
			}
			return cat.Encode(cmd.OutOrStdout())
		},
	}
}
