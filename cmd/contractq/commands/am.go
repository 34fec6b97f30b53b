package commands

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/contractq/am"
	"github.com/teranos/contractq/errors"
	"github.com/teranos/contractq/sym"
)

// AmCmd groups the configuration commands
var AmCmd = &cobra.Command{
	Use:   "am",
	Short: sym.Config + " Show contractq configuration",
	Long: sym.Config + ` am - Show contractq configuration ("I am")

Configuration sources (later overrides earlier):
1. Built-in defaults
2. System config (/etc/contractq/am.toml)
3. User config (~/.contractq/am.toml)
4. Project config (./am.toml, searched upward)
5. Environment variables (CONTRACTQ_* prefix)

Examples:
  contractq am show                 # Effective configuration as TOML
  contractq am show --format json   # ... as JSON
  contractq am show --sources       # Where every value came from
  contractq am validate             # Check the configuration`,
}

var amShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runAmShow,
}

var amValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the effective configuration",
	RunE:  runAmValidate,
}

var (
	amFormat  string
	amSources bool
)

func init() {
	amShowCmd.Flags().StringVarP(&amFormat, "format", "f", "toml", "Output format: toml, json, yaml")
	amShowCmd.Flags().BoolVar(&amSources, "sources", false, "List every setting with its source")

	AmCmd.AddCommand(amShowCmd)
	AmCmd.AddCommand(amValidateCmd)
}

func runAmShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if amSources {
		settings, err := am.Introspect()
		if err != nil {
			return errors.Wrap(err, "introspect configuration")
		}
		if amFormat != "toml" {
			return writeValue(out, settings, amFormat)
		}
		for _, s := range settings {
			where := string(s.Source)
			if s.SourcePath != "" {
				where += " " + s.SourcePath
			}
			fmt.Fprintf(out, "%-36s = %-24v # %s\n", s.Key, s.Value, where)
		}
		return nil
	}

	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "load configuration")
	}
	if amFormat != "toml" {
		return writeValue(out, cfg, amFormat)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshal configuration to TOML")
	}
	fmt.Fprintf(out, "# contractq configuration\n%s", data)
	return nil
}

func runAmValidate(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		if hint := errors.FlattenHints(err); hint != "" {
			pterm.Error.Printf("%v\n", err)
			pterm.Info.Println(hint)
		}
		return errors.Wrap(err, "configuration validation failed")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Configuration is valid\n", sym.OK)
	return nil
}
