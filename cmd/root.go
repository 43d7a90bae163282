package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/hancao97/hanai-wealth/internal/utils"
	"github.com/hancao97/hanai-wealth/pkg/gurufocus"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hanai-wealth",
	Short: "A-share valuation screener with dated snapshots.",
	Long: `hanai-wealth crawls the GuruFocus China screener into dated JSON
snapshots, keeps a date index over them, and answers filtered, paginated
queries from the command line or over HTTP.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.hanai-wealth.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("datadir", "d", "", "Snapshot directory (overrides data.dir from config)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".hanai-wealth")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.hanai-wealth.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	// Set default values for all keys
	viper.SetDefault("gurufocus.endpoint", gurufocus.DefaultEndpoint)
	viper.SetDefault("gurufocus.per_page", gurufocus.DefaultPerPage)
	viper.SetDefault("data.dir", "public/assets")
	viper.SetDefault("db.path", "")

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}

// dataDir resolves the snapshot directory: flag first, then config.
func dataDir(cmd *cobra.Command) string {
	if dir, _ := cmd.Flags().GetString("datadir"); dir != "" {
		return dir
	}
	return viper.GetString("data.dir")
}
