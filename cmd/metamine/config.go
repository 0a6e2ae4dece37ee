// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bverhoef/metamine/pkg/types"
)

// miningConfig assembles the run configuration from viper (config file,
// environment) with the reference defaults, then applies the shared
// --folder flag override.
func miningConfig(cmd *cobra.Command) types.MiningConfig {
	viper.SetDefault("folder", "data")

	viper.SetDefault("search.timeout", "60s")
	viper.SetDefault("search.user_agent", "metamine/"+version)
	viper.SetDefault("search.source", "MED")
	viper.SetDefault("search.organism", "HUMAN")
	viper.SetDefault("search.pub_type", "Journal Article")
	viper.SetDefault("search.page_size", 1000)
	viper.SetDefault("search.workers", 10)
	viper.SetDefault("search.max_retries", 5)
	viper.SetDefault("search.requests_per_second", 0)
	viper.SetDefault("search.term_timeout", "0s")

	viper.SetDefault("ontology.timeout", "60s")
	viper.SetDefault("ontology.user_agent", "metamine/"+version)
	viper.SetDefault("ontology.batch_size", 50)
	viper.SetDefault("ontology.root_id", "GO:0008150")

	cfg := types.MiningConfig{
		Folder: viper.GetString("folder"),
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("search.timeout"),
				UserAgent: viper.GetString("search.user_agent"),
			},
			Source:            viper.GetString("search.source"),
			Organism:          viper.GetString("search.organism"),
			PubType:           viper.GetString("search.pub_type"),
			PageSize:          viper.GetInt("search.page_size"),
			Workers:           viper.GetInt("search.workers"),
			MaxRetries:        viper.GetInt("search.max_retries"),
			RequestsPerSecond: viper.GetFloat64("search.requests_per_second"),
			TermTimeout:       viper.GetDuration("search.term_timeout"),
		},
		Ontology: types.OntologyConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("ontology.timeout"),
				UserAgent: viper.GetString("ontology.user_agent"),
			},
			BatchSize: viper.GetInt("ontology.batch_size"),
			RootID:    viper.GetString("ontology.root_id"),
		},
	}

	if folder, _ := cmd.Flags().GetString("folder"); folder != "" {
		cfg.Folder = folder
	}
	return cfg
}
