package main

import (
	"os"

	"github.com/loykin/sqlrun/cmd/sqlrun/commands"
	"github.com/loykin/sqlrun/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "sqlrun",
	Short: "Resolve effective migration settings and author SQL migration files",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	// Defaults
	v := viper.GetViper()
	v.SetDefault("config", constants.DefaultConfigPath)
	v.SetDefault("type", "")
	v.SetDefault("versioning", "")

	// Environment variables support: SQLRUN_CONFIG, ...
	v.SetEnvPrefix("SQLRUN")
	v.AutomaticEnv()

	// Bind flags via Cobra and then bind to Viper
	rootCmd.PersistentFlags().String("config", v.GetString("config"), "path to a sqlrun.toml (missing file means built-in defaults)")
	commands.CreateCmd.Flags().String("type", v.GetString("type"), "migration type: inferred, simple or reversible (default from config)")
	commands.CreateCmd.Flags().String("versioning", v.GetString("versioning"), "versioning scheme: inferred, timestamp or sequential (default from config)")

	_ = v.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = v.BindPFlag("type", commands.CreateCmd.Flags().Lookup("type"))
	_ = v.BindPFlag("versioning", commands.CreateCmd.Flags().Lookup("versioning"))

	rootCmd.AddCommand(commands.CreateCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.HashCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
