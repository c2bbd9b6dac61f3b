package client

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-dice-tray/internal/entities/dice"
	"github.com/KirkDiggler/rpg-dice-tray/internal/handlers/api/v1alpha1"
)

var (
	rollBonus     int
	rollAdvantage string
	rollHidden    bool
	rollSpeed     float64
)

var listSetsCmd = &cobra.Command{
	Use:   "sets",
	Short: "List the selectable dice sets",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return call("ListSets", struct{}{})
	},
}

var rollCmd = &cobra.Command{
	Use:   "roll [set-id] [die]...",
	Short: "Roll a selection of dice from a set",
	Long: `Roll dice from a set. Dice are definition ids or die types, optionally with a count. Examples:

  roll GALAXY_STANDARD D20
  roll GALAXY_STANDARD D6=3 D8 --bonus 2
  roll IRON_STANDARD D20 --advantage ADVANTAGE
  roll all WALNUT_STANDARD_D100 GLASS_STANDARD_D4=2`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		counts, err := parseCounts(args[0], args[1:])
		if err != nil {
			return err
		}

		req := &v1alpha1.RollDiceRequest{
			PlayerID:        playerID,
			SetID:           args[0],
			Counts:          counts,
			Advantage:       dice.Advantage(rollAdvantage),
			Hidden:          rollHidden,
			SpeedMultiplier: rollSpeed,
		}
		if cmd.Flags().Changed("bonus") {
			req.Bonus = dice.Int(rollBonus)
		}

		fmt.Printf("Rolling %s for %s...\n", strings.Join(args[1:], " "), playerID)
		return call("RollDice", req)
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview [set-id] [die]...",
	Short: "Show the throws a selection would use",
	Long:  `Preview throws for a selection before rolling. Omit the dice to clear the preview.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		counts, err := parseCounts(args[0], args[1:])
		if err != nil {
			return err
		}

		return call("PreviewRoll", &v1alpha1.PreviewRollRequest{
			PlayerID:        playerID,
			SetID:           args[0],
			Counts:          counts,
			Advantage:       dice.Advantage(rollAdvantage),
			SpeedMultiplier: rollSpeed,
		})
	},
}

func init() {
	rollCmd.Flags().IntVar(&rollBonus, "bonus", 0, "Flat bonus added to the total")
	rollCmd.Flags().StringVar(&rollAdvantage, "advantage", "", "ADVANTAGE or DISADVANTAGE")
	rollCmd.Flags().BoolVar(&rollHidden, "hidden", false, "Hide values from other players")
	rollCmd.Flags().Float64Var(&rollSpeed, "speed", 1, "Throw speed multiplier")

	previewCmd.Flags().StringVar(&rollAdvantage, "advantage", "", "ADVANTAGE or DISADVANTAGE")
	previewCmd.Flags().Float64Var(&rollSpeed, "speed", 1, "Throw speed multiplier")
}

// parseCounts turns "D6=3" or "GALAXY_STANDARD_D6" style arguments into
// counts keyed by definition id
func parseCounts(setID string, args []string) (map[string]int, error) {
	counts := make(map[string]int, len(args))
	for _, arg := range args {
		id, count := arg, 1
		if name, n, ok := strings.Cut(arg, "="); ok {
			parsed, err := strconv.Atoi(n)
			if err != nil || parsed < 0 {
				return nil, fmt.Errorf("invalid count in %q", arg)
			}
			id, count = name, parsed
		}
		if id == "" {
			return nil, fmt.Errorf("missing die in %q", arg)
		}

		if t := dice.Type(strings.ToUpper(id)); t.Valid() {
			if setID == dice.AllSetID {
				return nil, fmt.Errorf("die type %s is ambiguous in the %q set, use a definition id", t, dice.AllSetID)
			}
			id = fmt.Sprintf("%s_%s", setID, t)
		}
		counts[id] += count
	}
	return counts, nil
}
