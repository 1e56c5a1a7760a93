package commands

import (
	"fmt"
	"strings"

	"github.com/loykin/sqlrun"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var ConfigCmd = &cobra.Command{
	Use:   "config [driver-kind]",
	Short: "Print the effective migration settings (config file, environment, defaults merged)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v := viper.GetViper()

		cfg, err := loadConfig(v.GetString("config"))
		if err != nil {
			return err
		}

		kind := "postgres"
		if len(args) > 0 {
			kind = args[0]
		}
		sqlrun.GetLogger().WithComponent("config").WithDriver(kind).Debug("resolving effective settings")

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "migrations-dir:       %s\n", cfg.MigrationsDir())
		fmt.Fprintf(out, "table-name:           %s\n", cfg.TableName())
		fmt.Fprintf(out, "qualified-table-name: %s\n", cfg.QualifiedTableName(kind))
		fmt.Fprintf(out, "sanitized-table-name: %s\n", cfg.SanitizedTableName(kind))
		if schema, ok := cfg.PostgresSchema(); ok {
			fmt.Fprintf(out, "postgres-schema:      %s\n", schema)
		} else {
			fmt.Fprintf(out, "postgres-schema:      (none)\n")
		}
		if schemas := cfg.CreateSchemas(); len(schemas) > 0 {
			fmt.Fprintf(out, "create-schemas:       %s\n", strings.Join(schemas, ", "))
		}
		fmt.Fprintf(out, "ignored-chars:        %s\n", formatChars(cfg.IgnoredChars()))
		d := cfg.Defaults()
		fmt.Fprintf(out, "migration-type:       %s\n", d.MigrationType)
		fmt.Fprintf(out, "migration-versioning: %s\n", d.MigrationVersioning)
		return nil
	},
}

func formatChars(chars []rune) string {
	if len(chars) == 0 {
		return "(none)"
	}
	quoted := make([]string, len(chars))
	for i, r := range chars {
		quoted[i] = fmt.Sprintf("%q", r)
	}
	return strings.Join(quoted, " ")
}
