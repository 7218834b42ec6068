package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "arrqueue",
	Short: "arrqueue cli",
	Long:  `aggregate, diagnose and act on sonarr and radarr download queues`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file")
}

const (
	defaultRefreshInterval = time.Minute
	defaultHTTPTimeout     = time.Second * 30
)

func initConfig() {
	viper.SetConfigFile(cfgFile)

	viper.SetEnvPrefix("ARRQUEUE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", ""))
	viper.AutomaticEnv()

	viper.SetDefault("server.port", 8080)

	viper.SetDefault("manager.refreshInterval", defaultRefreshInterval)
	viper.SetDefault("manager.pageSize", 100)

	viper.SetDefault("http.maxRetries", 3)
	viper.SetDefault("http.baseBackoff", time.Millisecond*500)
	viper.SetDefault("http.timeout", defaultHTTPTimeout)
}
