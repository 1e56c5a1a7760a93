package commands

import (
	"fmt"

	"github.com/loykin/sqlrun"
	"github.com/loykin/sqlrun/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var CreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new migration file (or up/down pair) in the resolved migrations directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v := viper.GetViper()

		cfg, err := loadConfig(v.GetString("config"))
		if err != nil {
			return err
		}

		opts := sqlrun.CreateOptions{
			Name:       "migration",
			Dir:        cfg.MigrationsDir(),
			Type:       cfg.Defaults().MigrationType,
			Versioning: cfg.Defaults().MigrationVersioning,
		}
		if len(args) > 0 {
			opts.Name = args[0]
		}

		// Flags override the configured authoring defaults.
		if s := v.GetString("type"); s != "" {
			if opts.Type, err = config.ParseMigrationType(s); err != nil {
				return err
			}
		}
		if s := v.GetString("versioning"); s != "" {
			if opts.Versioning, err = config.ParseVersioning(s); err != nil {
				return err
			}
		}

		logger := sqlrun.GetLogger().WithComponent("create")
		logger.Debug("authoring migration",
			"name", opts.Name,
			"dir", opts.Dir,
			"type", string(opts.Type),
			"versioning", string(opts.Versioning))

		paths, err := sqlrun.CreateMigration(opts)
		if err != nil {
			return err
		}
		logger.Debug("migration created", "files", len(paths))
		for _, p := range paths {
			fmt.Println(p)
		}
		return nil
	},
}
