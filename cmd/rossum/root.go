package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	rossum "github.com/dangell7/rossum-go"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "rossum",
	Short: "Rossum Elis Extraction API client",
	Long: `Command line client for the Rossum Elis Extraction API.

Submits a PDF or image document for AI-based data extraction, waits for the
job to finish, and prints a summary of the extracted fields. Credentials are
read from the ROSSUM_API_KEY environment variable; sign up for free at
https://rossum.ai/developers/#sign-in`,
}

func init() {
	viper.SetDefault("api_url", rossum.DefaultBaseURL)
	_ = viper.BindEnv("api_key", rossum.EnvAPIKey)
	_ = viper.BindEnv("api_url", rossum.EnvAPIURL)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(versionCmd)
}
