package cmd

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/airlift-sh/airlift/constants"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "airlift",
	Short: "Deploy source code to a Heroku-compatible platform",
	Long: `
	Airlift deploys an application from local source code:

	1. bundles the source directory into a tar.gz archive
	2. uploads it to a platform-issued one-time source URL
	3. triggers a remote build and streams its output
	4. verifies the build succeeded
	5. reconciles the app's config vars with the declared desired state
	`,
	Version: constants.Version,
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
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.airlift.yaml)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigName(".airlift")
	}

	viper.AutomaticEnv()
	viper.BindEnv("token", constants.TokenEnvVar)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
