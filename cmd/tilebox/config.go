package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tilebox/internal/config"
)

var flagEffective bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the game configuration",
	Long: `Print the default configuration file, ready to be copied to
~/.tilebox/configs/tilebox.yaml or ./configs/tilebox.yaml and edited.

With --effective, prints the configuration that would actually be used
after the search path and --config are applied.

Examples:
  tilebox config > ~/.tilebox/configs/tilebox.yaml
  tilebox config --effective --config ./fast.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagEffective, "effective", false, "Print the resolved configuration instead of the default file")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if !flagEffective {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}
