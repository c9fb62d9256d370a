package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/huntboard/huntboard/internal/config"
	"github.com/huntboard/huntboard/internal/toolschema"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show huntboard status",
	RunE:  runStatus,
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfgPath := config.ConfigPath()

	fmt.Printf("%s huntboard Status\n\n", logo)

	_, statErr := os.Stat(cfgPath)
	cfgMark := "✗"
	if statErr == nil {
		cfgMark = "✓"
	}
	fmt.Printf("Config:    %s %s\n", cfgPath, cfgMark)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("  (could not load config: %v)\n", err)
		return nil
	}

	ws := cfg.WorkspacePath()
	_, wsErr := os.Stat(ws)
	wsMark := "✗"
	if wsErr == nil {
		wsMark = "✓"
	}
	fmt.Printf("Workspace: %s %s\n", ws, wsMark)
	fmt.Printf("Model:     %s\n", cfg.Agents.Defaults.Model)

	keyMark := "(not set)"
	if cfg.Provider.APIKey != "" {
		keyMark = "✓"
	}
	fmt.Printf("API key:   %s\n", keyMark)

	catalog, err := toolschema.LoadCatalog(cfg.Tools.CatalogPath)
	if err != nil {
		fmt.Printf("Tools:     error: %v\n", err)
		return nil
	}
	fmt.Printf("Tools:     %d in catalogue\n", len(catalog))

	if cfg.Feed.Enabled {
		fmt.Printf("Feed:      ws://%s:%d/ops\n", cfg.Feed.Host, cfg.Feed.Port)
	} else {
		fmt.Println("Feed:      disabled")
	}
	return nil
}
