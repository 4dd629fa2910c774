package cmd

import (
	"os"

	"github.com/domainaware/gcpdns/internal/changeset"
	"github.com/domainaware/gcpdns/internal/output"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	zoneGCPName          string
	zoneDescription      string
	zoneDeleteYes        bool
	zoneDumpFormat       string
	zoneDumpOutputs      []string
	zoneDumpRecords      bool
	zoneUpdateIgnoreErrs bool
)

var zoneCmd = &cobra.Command{
	Use:   "zone",
	Short: "Manage DNS zones",
}

var zoneCreateCmd = &cobra.Command{
	Use:   "create DNS_NAME",
	Short: "Create a DNS zone",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, provider, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		return provider.CreateZone(cmd.Context(), args[0], zoneGCPName, zoneDescription)
	},
}

var zoneDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a DNS zone and all its resource records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, provider, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		if !zoneDeleteYes && !confirm("Are you sure you want to delete this zone?") {
			logger.Warn("Zone deletion aborted", zap.String("name", args[0]))
			return nil
		}
		return provider.DeleteZone(cmd.Context(), args[0])
	},
}

var zoneDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump a list of DNS zones",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, provider, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		zones, err := provider.DumpZones(cmd.Context(), zoneDumpRecords)
		if err != nil {
			return err
		}
		dump, err := output.Zones(zones)
		if err != nil {
			return err
		}
		return output.Write(dump, zoneDumpFormat, zoneDumpOutputs, cmd.OutOrStdout())
	},
}

var zoneUpdateCmd = &cobra.Command{
	Use:   "update CSV_FILE",
	Short: "Create and delete zones using a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, provider, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		file, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer file.Close()

		applier := changeset.NewApplier(
			logger.With(zap.String("component", "changeset")), zoneUpdateIgnoreErrs)
		_, err = applier.ApplyZones(cmd.Context(), file, provider)
		return err
	},
}

func init() {
	zoneCreateCmd.Flags().StringVar(&zoneGCPName, "gcp-name", "", "Set the zone's GCP name")
	zoneCreateCmd.Flags().StringVar(&zoneDescription, "description", "", "Set the zone's description")

	zoneDeleteCmd.Flags().BoolVarP(&zoneDeleteYes, "yes", "y", false, "Skip the confirmation prompt")

	zoneDumpCmd.Flags().StringVarP(&zoneDumpFormat, "format", "f", output.FormatJSON, "Set the screen output format (json or csv)")
	zoneDumpCmd.Flags().StringArrayVarP(&zoneDumpOutputs, "output", "o", nil, "One or more output file paths that end in .csv or .json (suppresses screen output)")
	zoneDumpCmd.Flags().BoolVarP(&zoneDumpRecords, "records", "r", false, "Include each zone's record names and types")

	zoneUpdateCmd.Flags().BoolVar(&zoneUpdateIgnoreErrs, "ignore-errors", false, "Continue processing the CSV when errors occur")

	zoneCmd.AddCommand(zoneCreateCmd)
	zoneCmd.AddCommand(zoneDeleteCmd)
	zoneCmd.AddCommand(zoneDumpCmd)
	zoneCmd.AddCommand(zoneUpdateCmd)
}
