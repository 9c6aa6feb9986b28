package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(profileCmd)
}

var profileCmd = &cobra.Command{
	Use:   "profile <user-id>",
	Short: "Show a user's profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfile,
}

func runProfile(cmd *cobra.Command, args []string) error {
	db, game, _, err := openGame()
	if err != nil {
		return err
	}
	defer db.Close()

	p, err := game.Profile(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("User:    %s\n", p.UserID)
	fmt.Printf("Level:   %d (%d XP)\n", p.Level, p.Experience)
	fmt.Printf("Coins:   %d\n", p.Coins)
	fmt.Printf("Health:  %d/100\n", p.Health)
	fmt.Printf("Stress:  %d/120\n", p.Stress)
	if p.PetID != "" {
		fmt.Printf("Pet:     %s\n", p.PetID)
	}
	fmt.Printf("House:   %s\n", p.CurrentHouseID)
	fmt.Printf("Room:    %s\n", p.CurrentWorkRoomID)
	return nil
}
