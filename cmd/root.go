package cmd

import (
	"errors"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app       = "resume-scorer"
	envPrefix = "RESUME_SCORER"
)

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-scorer scores resumes for ATS compatibility and matches them against job postings",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-scorer.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	err := viper.ReadInConfig()
	if err == nil {
		return
	}

	// The config file is optional unless it was requested explicitly.
	var notFound viper.ConfigFileNotFoundError
	if cfgFile == "" && errors.As(err, &notFound) {
		return
	}

	log.Fatal(err)
}
