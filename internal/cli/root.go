// Package cli holds the studyfortress commands.
package cli

import (
	"io/fs"

	"github.com/spf13/cobra"

	"studyfortress/internal/config"
	"studyfortress/internal/platform/logger"
)

type globals struct {
	configFile string
	envFile    string
	cfg        *config.Config
	log        *logger.Logger
}

// NewRootCmd builds the command tree. static holds the browser assets that
// serve mounts under /static.
func NewRootCmd(static fs.FS) *cobra.Command {
	g := &globals{}
	cmd := &cobra.Command{
		Use:   "studyfortress",
		Short: "Study workspace server with canvas, tabs, recordings and study sessions",
		Long: `Study Fortress serves a browser workspace for study folders: an infinite
canvas of note cards, tab panels, voice recordings, mind maps and a
flashcard study mode. State lives in memory per user and folder.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var dotenv []string
			if g.envFile != "" {
				dotenv = append(dotenv, g.envFile)
			}
			cfg, err := config.Load(g.configFile, dotenv...)
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Mode)
			if err != nil {
				return err
			}
			g.cfg, g.log = cfg, log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if g.log != nil {
				g.log.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&g.configFile, "config", "c", "", "YAML config file")
	cmd.PersistentFlags().StringVar(&g.envFile, "env-file", "", "dotenv file to load (default .env)")

	cmd.AddCommand(newServeCmd(g, static))
	cmd.AddCommand(newCatalogCmd(g))
	return cmd
}
