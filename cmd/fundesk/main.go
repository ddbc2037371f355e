package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"fundesk/internal/api"
	"fundesk/internal/config"
	"fundesk/internal/i18n"
	"fundesk/internal/list"
	"fundesk/internal/logging"
	"fundesk/internal/query"

	"fundesk/cmd/fundesk/ui"
)

var (
	// Global flags
	verbose      bool
	apiURL       string
	apiToken     string
	organization int
	lang         string
	timeout      time.Duration

	// Resolved at startup
	cfg    *config.Config
	client *api.Client

	// stdout is swappable so tests can capture command output.
	stdout io.Writer = os.Stdout

	// submitGuard serializes state-changing commands. A second submission
	// while one is in flight is rejected rather than queued.
	submitGuard list.SubmitGuard
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "fundesk",
	Short: "fundesk - terminal console for the voucher platform",
	Long: `fundesk is a terminal console for sponsor, provider and validator
organizations on the voucher platform.

It lists and manages funds, vouchers, product reservations, payout
transactions and bulk payments through the platform API, with the same
filters and exports the web dashboards offer.

Run without arguments to open the interactive dashboard.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded

		// Flags win over config file and environment.
		if apiURL != "" {
			cfg.API.URL = apiURL
		}
		if apiToken != "" {
			cfg.API.Token = apiToken
		}
		if organization != 0 {
			cfg.Organization = organization
		}
		if verbose {
			cfg.Logging.DebugMode = true
		}

		if err := i18n.Init(); err != nil {
			return fmt.Errorf("failed to load message catalogs: %w", err)
		}
		if lang != "" {
			i18n.SetLocale(lang)
		}

		if dir, err := config.Dir(); err == nil {
			if err := logging.Init(cfg.Logging, dir); err != nil {
				return fmt.Errorf("failed to initialize logging: %w", err)
			}
		}

		apiTimeout := api.DefaultTimeout
		if d, err := time.ParseDuration(cfg.API.Timeout); err == nil && d > 0 {
			apiTimeout = d
		}
		if timeout > 0 {
			apiTimeout = timeout
		}
		client = api.New(api.Config{
			BaseURL: cfg.API.URL,
			Token:   cfg.API.Token,
			Timeout: apiTimeout,
			Logger:  logging.For(logging.CategoryAPI),
		})
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging to the log file")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Platform API base URL (or set FUNDESK_API_URL)")
	rootCmd.PersistentFlags().StringVar(&apiToken, "token", "", "API bearer token (or set FUNDESK_API_TOKEN)")
	rootCmd.PersistentFlags().IntVarP(&organization, "organization", "o", 0, "Active organization id (or set FUNDESK_ORGANIZATION)")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "", "Interface language (en or nl)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "API request timeout")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, renderError(err))
		os.Exit(1)
	}
}

// requireOrg guards commands that act on a single organization.
func requireOrg() (int, error) {
	if cfg.Organization == 0 {
		return 0, fmt.Errorf("no organization selected, pass --organization or set FUNDESK_ORGANIZATION")
	}
	return cfg.Organization, nil
}

func cmdContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), api.DefaultTimeout)
}

// renderError maps the error taxonomy onto the localized banner lines the
// dashboards show.
func renderError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, list.ErrSubmitInFlight):
		return i18n.T("error_submit_in_flight")
	case api.IsValidation(err):
		var ve *api.ValidationError
		errors.As(err, &ve)
		return formatValidation(ve)
	case api.IsPermission(err):
		return i18n.T("error_permission")
	case api.IsRateLimit(err):
		return err.Error()
	case api.IsNetwork(err):
		return i18n.T("error_network")
	default:
		return err.Error()
	}
}

func formatValidation(ve *api.ValidationError) string {
	fields := make([]string, 0, len(ve.Fields))
	for field := range ve.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	out := i18n.T("error_failed") + " " + ve.Message
	for _, field := range fields {
		for _, msg := range ve.Fields[field] {
			out += fmt.Sprintf("\n  %s: %s", field, msg)
		}
	}
	return out
}

// guarded runs a state-changing call through the submit guard so a
// command invoked twice concurrently (scripted loops, mostly) cannot
// double-submit.
func guarded(fn func() error) error {
	return submitGuard.Do(fn)
}

// runList drives a one-shot fetch through the list controller and prints
// the resulting page as a table.
func runList[T any](values query.Values, fetch list.FetchFunc[T], headers []string, row func(T) []string) error {
	holder := query.New(values)
	ctrl := list.New(context.Background(), holder, fetch)
	defer ctrl.Close()

	ctrl.Load()
	ctrl.Wait()

	snap := ctrl.Snapshot()
	if snap.State == list.Errored {
		return snap.Err
	}
	printPage(snap.Page, headers, row)
	return nil
}

func printPage[T any](page *api.Page[T], headers []string, row func(T) []string) {
	if page == nil || page.Empty() {
		fmt.Fprintln(stdout, i18n.T("list_empty_title"))
		return
	}
	table := ui.NewTable(headers)
	rows := make([][]string, len(page.Data))
	for i, item := range page.Data {
		rows[i] = row(item)
	}
	table.SetRows(rows)
	fmt.Fprint(stdout, table.View(ui.DefaultStyles()))
	fmt.Fprintln(stdout, i18n.TData("list_pagination", map[string]any{
		"Page":     page.Meta.CurrentPage,
		"LastPage": page.Meta.LastPage,
		"Total":    page.Meta.Total,
	}))
}

func printDetail(pairs [][2]string) {
	width := 0
	for _, p := range pairs {
		if len(p[0]) > width {
			width = len(p[0])
		}
	}
	for _, p := range pairs {
		fmt.Fprintf(stdout, "%-*s  %s\n", width, p[0], p[1])
	}
}

func runDashboard() error {
	org, err := requireOrg()
	if err != nil {
		return err
	}
	program := tea.NewProgram(ui.NewDashboard(client, org), tea.WithAltScreen())
	_, err = program.Run()
	return err
}
