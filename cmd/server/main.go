// Package main is the entry point for the dice tray server and client
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-dice-tray/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "dice-tray",
	Short: "Dice tray gRPC server",
	Long:  `Dice tray composes dice rolls, tracks them until every die settles and shares finished rolls with other players.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
