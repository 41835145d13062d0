package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-survivors/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective balance config",
	Long: `Print the balance config as YAML after the search order and the
difficulty preset are applied. The output can be edited and passed
back with --config.

Search order:
  --config <path>
  ~/.arcade/configs/survivors.yaml
  ./configs/survivors.yaml
  built-in defaults

Examples:
  survivors config
  survivors config --difficulty hard
  survivors config --defaults > my-survivors.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in defaults verbatim")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagDefaults {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = os.Stdout.Write(data)
	return err
}
