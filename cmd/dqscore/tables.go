// cmd/dqscore/tables.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables --source <postgres|snowflake|sqlite>",
	Short: "List the tables a database source exposes",
	Args:  cobra.NoArgs,
	RunE:  runTables,
}

func init() {
	addSourceFlags(tablesCmd)
}

func runTables(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	conn, err := openSource(ctx, cmd)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.Validate(); err != nil {
		return err
	}

	tables, err := conn.ListTables(ctx)
	if err != nil {
		return err
	}
	for _, name := range tables {
		fmt.Fprintln(os.Stdout, name)
	}
	return nil
}
