package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fundesk/internal/config"
	"fundesk/internal/i18n"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change the stored configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		consent := cfg.CookiesAccepted
		if consent == config.ConsentUnset {
			consent = i18n.T("consent_unset")
		}
		org := "-"
		if cfg.Organization != 0 {
			org = fmt.Sprintf("%d", cfg.Organization)
		}
		printDetail([][2]string{
			{"API URL", cfg.API.URL},
			{"Organization", org},
			{"Client type", cfg.ClientType},
			{"Debug logging", fmt.Sprintf("%t", cfg.Logging.DebugMode)},
			{"Cookie consent", consent},
		})
		return nil
	},
}

// configConsentCmd stores the consent banner choice. "all" enables every
// tracking category, "functional" only the strictly necessary ones; the
// flag persists so the banner never reappears.
var configConsentCmd = &cobra.Command{
	Use:       "consent [all|functional]",
	Short:     "Store the cookie consent choice",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{config.ConsentAll, config.ConsentFunctional},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			value := cfg.CookiesAccepted
			if value == config.ConsentUnset {
				value = i18n.T("consent_unset")
			}
			fmt.Fprintln(stdout, i18n.TData("consent_current", map[string]any{"Value": value}))
			return nil
		}
		if err := cfg.SetConsent(args[0]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintln(stdout, i18n.TData("consent_updated", map[string]any{"Value": args[0]}))
		return nil
	},
}

var configClientTypeCmd = &cobra.Command{
	Use:       "client-type [sponsor|provider|validator]",
	Short:     "Set the dashboard flavor",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"sponsor", "provider", "validator"},
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "sponsor", "provider", "validator":
		default:
			return fmt.Errorf("unknown client type %q", args[0])
		}
		cfg.ClientType = args[0]
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "client type set to %s\n", args[0])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configConsentCmd)
	configCmd.AddCommand(configClientTypeCmd)
	rootCmd.AddCommand(configCmd)
}
