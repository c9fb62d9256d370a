package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/huntboard/huntboard/internal/config"
	"github.com/huntboard/huntboard/internal/dependency"
	"github.com/huntboard/huntboard/internal/shared/cmdutils"
)

func buildContainer() (*dependency.Container, error) {
	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return dependency.New(cfg)
}

// ---- digest ----------------------------------------------------------------

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Generate the morning briefing",
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := buildContainer()
		if err != nil {
			return err
		}
		digest, _, err := c.Workflows().DailyDigest(cmd.Context())
		if err != nil {
			return err
		}
		cmdutils.PrintResponse(digest)
		return nil
	},
}

// ---- reorder ---------------------------------------------------------------

var (
	reorderSection string
	reorderJobID   string
)

var reorderCmd = &cobra.Command{
	Use:   "reorder",
	Short: "Reorder resume bullets for a target job",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if reorderJobID == "" {
			return fmt.Errorf("--job is required")
		}
		c, err := buildContainer()
		if err != nil {
			return err
		}
		reorder, opID, err := c.Workflows().ReorderResume(cmd.Context(), reorderSection, reorderJobID)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Reorder ready (operation %s)\n\n", opID)
		for _, m := range reorder.Moves {
			fmt.Printf("  %2d  %s", m.NewPosition, m.BulletID)
			if m.Rationale != "" {
				fmt.Printf("  — %s", m.Rationale)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	reorderCmd.Flags().StringVarP(&reorderSection, "section", "s", "experience", "Resume section to reorder")
	reorderCmd.Flags().StringVarP(&reorderJobID, "job", "j", "", "Target job id")
}

// ---- skills ----------------------------------------------------------------

var skillsJSON bool

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Consolidate duplicate resume skills",
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := buildContainer()
		if err != nil {
			return err
		}
		merge, opID, err := c.Workflows().MergeSkills(cmd.Context())
		if err != nil {
			return err
		}

		if skillsJSON {
			data, err := json.MarshalIndent(merge, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Printf("✓ Merge ready (operation %s): %d skills survive\n\n", opID, len(merge.Skills))
		for _, s := range merge.Skills {
			fmt.Printf("  %s", s.Name)
			if s.Category != "" {
				fmt.Printf(" [%s]", s.Category)
			}
			if len(s.Absorbed) > 0 {
				fmt.Printf("  absorbs %d", len(s.Absorbed))
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	skillsCmd.Flags().BoolVar(&skillsJSON, "json", false, "Print the raw merge as JSON")
}
