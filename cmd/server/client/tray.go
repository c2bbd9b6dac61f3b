package client

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-dice-tray/internal/entities/dice"
	"github.com/KirkDiggler/rpg-dice-tray/internal/handlers/api/v1alpha1"
)

var finishCmd = &cobra.Command{
	Use:   "finish [die-id] [value]",
	Short: "Report the face a die settled on",
	Long: `Report a settled die the way a physics client would. Examples:

  finish die_3f1c 17`,
	Args: cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		value, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", args[1], err)
		}

		return call("FinishDie", &v1alpha1.FinishDieRequest{
			PlayerID: playerID,
			DieID:    args[0],
			Value:    &value,
			Transform: &dice.Transform{
				Rotation: dice.Quaternion{W: 1},
			},
		})
	},
}

var rerollCmd = &cobra.Command{
	Use:   "reroll [die-id]...",
	Short: "Reroll dice of the current roll, or every die when none are given",
	RunE: func(_ *cobra.Command, args []string) error {
		return call("Reroll", &v1alpha1.RerollRequest{
			PlayerID: playerID,
			DieIDs:   args,
		})
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the current roll",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return call("ClearRoll", &v1alpha1.PlayerRequest{PlayerID: playerID})
	},
}

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the current roll",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return call("GetRoll", &v1alpha1.PlayerRequest{PlayerID: playerID})
	},
}

var closeCmd = &cobra.Command{
	Use:   "close",
	Short: "Close the tray and withdraw the shared roll",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return call("CloseTray", &v1alpha1.PlayerRequest{PlayerID: playerID})
	},
}
