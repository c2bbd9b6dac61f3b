package client

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-dice-tray/internal/handlers/api/v1alpha1"
)

var (
	historyRemove int
	historyReroll int
	historyHidden bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List, remove or reroll recent selections",
	Long: `Recent selections are listed oldest first. Examples:

  history
  history --reroll 0
  history --remove 2`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		switch {
		case cmd.Flags().Changed("reroll"):
			return call("RerollHistory", &v1alpha1.HistoryRequest{
				PlayerID:        playerID,
				Index:           historyReroll,
				Hidden:          historyHidden,
				SpeedMultiplier: rollSpeed,
			})
		case cmd.Flags().Changed("remove"):
			return call("RemoveHistory", &v1alpha1.HistoryRequest{
				PlayerID: playerID,
				Index:    historyRemove,
			})
		default:
			return call("ListHistory", &v1alpha1.PlayerRequest{PlayerID: playerID})
		}
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyRemove, "remove", 0, "Index of the entry to remove")
	historyCmd.Flags().IntVar(&historyReroll, "reroll", 0, "Index of the entry to roll again")
	historyCmd.Flags().BoolVar(&historyHidden, "hidden", false, "Hide the rerolled values from other players")
	historyCmd.MarkFlagsMutuallyExclusive("remove", "reroll")
}
