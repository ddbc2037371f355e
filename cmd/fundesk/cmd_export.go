package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fundesk/internal/api"
	"fundesk/internal/export"
	"fundesk/internal/i18n"
	"fundesk/internal/logging"
	"fundesk/internal/query"
)

var (
	exportFormat string
	exportDir    string
	exportQ      string
	exportState  string
	exportFund   int
)

var exportCmd = &cobra.Command{
	Use:   "export [transactions|vouchers|reservations]",
	Short: "Download a filtered export of a resource",
	Long: `Downloads a server-side export of the chosen resource, applying the
same filters the list commands take. The file is written to the output
directory under a generated name:

  <client-type>_<resource>_<organization>_<date>_<time>.<ext>

The extension follows the server's content type (csv, xls or xlsx).`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"transactions", "vouchers", "reservations"},
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		resource := args[0]

		values := query.Values{"export_type": exportFormat}
		if exportQ != "" {
			values["q"] = exportQ
		}
		if exportState != "" {
			values["state"] = exportState
		}
		if exportFund != 0 {
			values["fund_id"] = exportFund
		}

		ctx, cancel := cmdContext()
		defer cancel()

		var file *api.ExportFile
		switch resource {
		case "transactions":
			file, err = client.Exports().Transactions(ctx, org, values)
		case "vouchers":
			file, err = client.Exports().Vouchers(ctx, org, values)
		case "reservations":
			file, err = client.Exports().Reservations(ctx, org, values)
		default:
			return fmt.Errorf("unknown export resource %q", resource)
		}
		if err != nil {
			return err
		}

		clientType := cfg.ClientType
		if clientType == "" {
			clientType = "sponsor"
		}
		path, err := export.Save(exportDir, clientType, resource, org, file)
		if err != nil {
			return err
		}
		logging.For(logging.CategoryExport).Info("export saved",
			zap.String("resource", resource), zap.String("path", path))
		fmt.Fprintln(stdout, i18n.TData("export_saved", map[string]any{"Path": path}))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Requested format (csv or xls)")
	exportCmd.Flags().StringVar(&exportDir, "out", ".", "Output directory")
	exportCmd.Flags().StringVarP(&exportQ, "q", "q", "", "Search text")
	exportCmd.Flags().StringVar(&exportState, "state", "", "Filter on state")
	exportCmd.Flags().IntVar(&exportFund, "fund", 0, "Filter on fund id")
	rootCmd.AddCommand(exportCmd)
}
