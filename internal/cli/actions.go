package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(relaxCmd)
	rootCmd.AddCommand(workCmd)
	rootCmd.AddCommand(badgesCmd)
}

var relaxCmd = &cobra.Command{
	Use:   "relax <user-id>",
	Short: "Use the relax action (3-hour cooldown)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, game, _, err := openGame()
		if err != nil {
			return err
		}
		defer db.Close()

		result, err := game.Relax(args[0])
		if err != nil {
			return err
		}
		if result.AlreadyUsed {
			fmt.Printf("Already used. Available again at %s.\n",
				result.NextAvailableAt.Format(time.Kitchen))
			return nil
		}
		fmt.Printf("Relaxed. Stress %d, health %d.\n", result.Profile.Stress, result.Profile.Health)
		return nil
	},
}

var workCmd = &cobra.Command{
	Use:   "work <user-id>",
	Short: "Use the work bonus action (3-hour cooldown)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, game, _, err := openGame()
		if err != nil {
			return err
		}
		defer db.Close()

		result, err := game.WorkBonus(args[0])
		if err != nil {
			return err
		}
		if result.AlreadyUsed {
			fmt.Printf("Already used. Available again at %s.\n",
				result.NextAvailableAt.Format(time.Kitchen))
			return nil
		}
		if result.Died {
			fmt.Println("The extra shift was too much. Everything has been reset.")
			return nil
		}
		fmt.Printf("Worked. Coins %d, health %d, stress %d.\n",
			result.Profile.Coins, result.Profile.Health, result.Profile.Stress)
		if result.LevelUp {
			fmt.Printf("Level up! %d → %d\n", result.PreviousLevel, result.NewLevel)
		}
		return nil
	},
}

var badgesCmd = &cobra.Command{
	Use:   "badges <user-id>",
	Short: "List a user's earned badges",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, game, _, err := openGame()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := game.EvaluateAndGrantBadges(args[0]); err != nil {
			return err
		}
		earned, err := db.ListBadges(args[0])
		if err != nil {
			return err
		}
		if len(earned) == 0 {
			fmt.Println("No badges yet.")
			return nil
		}
		for _, b := range earned {
			fmt.Printf("%s  (earned %s)\n", b.ID, b.EarnedAt.Format("2006-01-02"))
		}
		return nil
	},
}
