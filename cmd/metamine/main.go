// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the metamine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the metamine CLI.
var rootCmd = &cobra.Command{
	Use:   "metamine",
	Short: "Literature co-occurrence mining between metabolites and GO terms",
	Long: `metamine mines Europe PMC for papers mentioning curated metabolite names
and Gene Ontology term names, computes which papers mention both (a direct
association), and expands each direct association through the GO ancestor
hierarchy into implied ones.

Each stage is a subcommand: search queries one term category, ontology
builds the allowed GO catalogue, and mine runs the full pipeline.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./metamine.yaml or ~/.config/metamine/config.yaml)")
	rootCmd.PersistentFlags().String("folder", "", "data folder holding catalogues and outputs (default: data)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("metamine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "metamine"))
		}
	}

	viper.SetEnvPrefix("METAMINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
