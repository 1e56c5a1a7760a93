package commands

import (
	"fmt"

	"github.com/loykin/sqlrun"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var HashCmd = &cobra.Command{
	Use:   "hash [files...]",
	Short: "Print normalized content fingerprints of migration files",
	Long: "Print the SHA-384 fingerprint of each migration file after stripping the " +
		"configured ignored characters. With no arguments, fingerprints every " +
		"migration in the resolved migrations directory.",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := viper.GetViper()

		cfg, err := loadConfig(v.GetString("config"))
		if err != nil {
			return err
		}
		n := cfg.Normalizer()

		logger := sqlrun.GetLogger().WithComponent("hash")

		paths := args
		if len(paths) == 0 {
			logger.Debug("scanning migrations directory", "dir", cfg.MigrationsDir())
			history, err := sqlrun.ScanMigrations(cfg.MigrationsDir())
			if err != nil {
				return err
			}
			for _, m := range history {
				paths = append(paths, m.Path)
				if m.DownPath != "" {
					paths = append(paths, m.DownPath)
				}
			}
		}
		logger.Debug("fingerprinting migrations", "files", len(paths), "ignored_chars", len(cfg.IgnoredChars()))

		out := cmd.OutOrStdout()
		for _, p := range paths {
			sum, err := n.FingerprintFile(p)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s  %s\n", sum, p)
		}
		return nil
	},
}
