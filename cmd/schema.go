package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/intmarks/internal/intake"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of batch input files",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := intake.SchemaJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	},
}
