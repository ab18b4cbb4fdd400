package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "younan24",
	Short: "Photo studio backend for AI-assisted portrait editing",
	Long: `YouNan Studio is the backend for a photo studio editing service.
It composes retouching instructions from preset catalogs, sends portraits
to an image generation model, animates them into short videos, and renders
print-ready exports.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
