package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/huntboard/huntboard/internal/config"
	"github.com/huntboard/huntboard/internal/remind"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Manage digest reminders",
}

func init() {
	remindCmd.AddCommand(remindListCmd)
	remindCmd.AddCommand(remindAddCmd)
	remindCmd.AddCommand(remindRemoveCmd)
	remindCmd.AddCommand(remindEnableCmd)
}

func remindService() (*remind.Service, error) {
	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return nil, err
	}
	return remind.NewService(filepath.Join(cfg.WorkspacePath(), "reminders.json")), nil
}

// ---- list ------------------------------------------------------------------

var remindListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reminders",
	RunE: func(_ *cobra.Command, _ []string) error {
		svc, err := remindService()
		if err != nil {
			return err
		}
		reminders := svc.List()
		if len(reminders) == 0 {
			fmt.Println("No reminders.")
			return nil
		}
		fmt.Printf("%-38s %-20s %-16s %-10s %-20s\n", "ID", "Name", "Schedule", "Status", "Next Run")
		fmt.Println(strings.Repeat("-", 108))
		for _, r := range reminders {
			status := "enabled"
			if !r.Enabled {
				status = "disabled"
			}
			nextRun := ""
			if r.State.NextRunAtMs != nil {
				nextRun = time.UnixMilli(*r.State.NextRunAtMs).Format("2006-01-02 15:04")
			}
			fmt.Printf("%-38s %-20s %-16s %-10s %-20s\n", r.ID, r.Name, r.Expr, status, nextRun)
		}
		return nil
	},
}

// ---- add -------------------------------------------------------------------

var (
	remindAddName string
	remindAddExpr string
	remindAddTZ   string
)

var remindAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a reminder",
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := remindService()
		if err != nil {
			return err
		}
		r, err := svc.Add(cmd.Context(), remindAddName, remindAddExpr, remindAddTZ)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Added reminder '%s' (%s)\n", r.Name, r.ID)
		return nil
	},
}

func init() {
	remindAddCmd.Flags().StringVarP(&remindAddName, "name", "n", "morning digest", "Reminder name")
	remindAddCmd.Flags().StringVarP(&remindAddExpr, "cron", "c", "0 9 * * *", "Cron expression")
	remindAddCmd.Flags().StringVar(&remindAddTZ, "tz", "", "IANA timezone (default: local)")
}

// ---- remove ----------------------------------------------------------------

var remindRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a reminder",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		svc, err := remindService()
		if err != nil {
			return err
		}
		svc.List() // force load
		if !svc.Remove(args[0]) {
			return fmt.Errorf("no reminder with id %s", args[0])
		}
		fmt.Printf("✓ Removed %s\n", args[0])
		return nil
	},
}

// ---- enable ----------------------------------------------------------------

var remindDisable bool

var remindEnableCmd = &cobra.Command{
	Use:   "enable <id>",
	Short: "Enable or disable a reminder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := remindService()
		if err != nil {
			return err
		}
		svc.List() // force load
		r, ok := svc.Enable(cmd.Context(), args[0], !remindDisable)
		if !ok {
			return fmt.Errorf("no reminder with id %s", args[0])
		}
		state := "enabled"
		if !r.Enabled {
			state = "disabled"
		}
		fmt.Printf("✓ Reminder '%s' %s\n", r.Name, state)
		return nil
	},
}

func init() {
	remindEnableCmd.Flags().BoolVar(&remindDisable, "off", false, "Disable instead of enable")
}
