package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yacademy/researchsite/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize researchsite configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the site and writes a .researchsite.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
