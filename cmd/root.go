package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/sw33tLie/platescope/internal/utils"
	"github.com/sw33tLie/platescope/pkg/ant"
	"github.com/sw33tLie/platescope/pkg/discovery"
	"github.com/sw33tLie/platescope/pkg/storage"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

const (
	LOGO = `
	       _       _
	 _ __ | | __ _| |_ ___  ___  ___ ___  _ __   ___
	| '_ \| |/ _' | __/ _ \/ __|/ __/ _ \| '_ \ / _ \
	| |_) | | (_| | ||  __/\__ \ (_| (_) | |_) |  __/
	| .__/|_|\__,_|\__\___||___/\___\___/| .__/ \___|
	|_|                                  |_|

`
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "platescope",
	Short: "Discover registered vehicle plates by probing the national registry.",
	Long: LOGO + `platescope generates candidate plates, looks them up on the ANT portal and keeps
every confirmed vehicle in a local dataset. Plates found at random seed pattern
episodes that try the following numbers of the same prefix.

Run it without a subcommand for the interactive menu.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return fmt.Errorf("unknown command: '%s'. See 'platescope --help'", args[0])
		}
		return runMenu(cmd.Context(), os.Stdin, os.Stdout)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		stop()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.platescope.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("proxy", "", "", "HTTP Proxy (Useful for debugging. Example: http://127.0.0.1:8080)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
	rootCmd.PersistentFlags().String("backend", storage.BackendCSV, "Storage backend. Available: csv, sqlite")
	rootCmd.PersistentFlags().String("dataset", "", "Path to the dataset (default: dataset.csv or dataset.sqlite in CWD)")
	rootCmd.PersistentFlags().Duration("delay", discovery.DefaultDelay, "Wait between two lookups")

	viper.BindPFlag("proxy", rootCmd.PersistentFlags().Lookup("proxy"))
	viper.BindPFlag("storage.backend", rootCmd.PersistentFlags().Lookup("backend"))
	viper.BindPFlag("storage.path", rootCmd.PersistentFlags().Lookup("dataset"))
	viper.BindPFlag("discovery.delay", rootCmd.PersistentFlags().Lookup("delay"))

	viper.SetDefault("lookup.url", ant.DEFAULT_URL)
	viper.SetDefault("lookup.timeout", 10*time.Second)
	viper.SetDefault("lookup.retries", 2)
	viper.SetDefault("discovery.maxvariations", discovery.DefaultMaxVariations)
	viper.SetDefault("discovery.attemptfactor", discovery.DefaultAttemptFactor)
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
		viper.SetConfigName(".platescope")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("platescope")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("Error reading config file: %s\n", err)
		}
	}

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}
