package cmd

import (
	"os"

	"github.com/domainaware/gcpdns/internal/changeset"
	"github.com/domainaware/gcpdns/internal/output"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	recordTTL              int64
	recordReplace          bool
	recordDeleteYes        bool
	recordDumpFormat       string
	recordDumpOutputs      []string
	recordUpdateIgnoreErrs bool
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Manage DNS resource record sets",
}

var recordCreateCmd = &cobra.Command{
	Use:   "create NAME RECORD_TYPE DATA",
	Short: "Create a resource record set (data fields separated by |)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, provider, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		data := changeset.SplitData(args[1], args[2])
		return provider.CreateOrReplaceRecordSet(cmd.Context(),
			args[0], args[1], recordTTL, data, recordReplace)
	},
}

var recordDeleteCmd = &cobra.Command{
	Use:   "delete NAME RECORD_TYPE",
	Short: "Delete a resource record set",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, provider, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		if !recordDeleteYes && !confirm("Are you sure you want to delete this resource record set?") {
			logger.Warn("Record set deletion aborted",
				zap.String("name", args[0]),
				zap.String("type", args[1]))
			return nil
		}
		return provider.DeleteRecordSet(cmd.Context(), args[0], args[1])
	},
}

var recordDumpCmd = &cobra.Command{
	Use:   "dump ZONE",
	Short: "Dump a list of DNS resource records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, provider, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		records, err := provider.DumpRecords(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		dump, err := output.Records(records)
		if err != nil {
			return err
		}
		return output.Write(dump, recordDumpFormat, recordDumpOutputs, cmd.OutOrStdout())
	},
}

var recordUpdateCmd = &cobra.Command{
	Use:   "update CSV_FILE",
	Short: "Create, replace, and delete resource record sets using a CSV file",
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
			logger.With(zap.String("component", "changeset")), recordUpdateIgnoreErrs)
		_, err = applier.ApplyRecordSets(cmd.Context(), file, provider)
		return err
	},
}

func init() {
	recordCreateCmd.Flags().Int64VarP(&recordTTL, "ttl", "t", 0, "DNS time to live in seconds (defaults to --default-ttl)")
	recordCreateCmd.Flags().BoolVarP(&recordReplace, "replace", "r", false, "Replace any conflicting resource record set")

	recordDeleteCmd.Flags().BoolVarP(&recordDeleteYes, "yes", "y", false, "Skip the confirmation prompt")

	recordDumpCmd.Flags().StringVarP(&recordDumpFormat, "format", "f", output.FormatJSON, "Set the screen output format (json or csv)")
	recordDumpCmd.Flags().StringArrayVarP(&recordDumpOutputs, "output", "o", nil, "One or more output file paths that end in .csv or .json (suppresses screen output)")

	recordUpdateCmd.Flags().BoolVar(&recordUpdateIgnoreErrs, "ignore-errors", false, "Continue processing the CSV when errors occur")

	recordCmd.AddCommand(recordCreateCmd)
	recordCmd.AddCommand(recordDeleteCmd)
	recordCmd.AddCommand(recordDumpCmd)
	recordCmd.AddCommand(recordUpdateCmd)
}
