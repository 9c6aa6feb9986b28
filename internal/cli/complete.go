package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meu-mundo/meumundo/internal/domain"
)

func init() {
	completeCmd.Flags().StringVar(&completeType, "type", "", "Folder type (trabalho, estudos, lazer, tarefas_pessoais)")
	completeCmd.Flags().StringVar(&completeImportance, "importance", "", "Event importance (simple, medium, important)")
	completeCmd.Flags().StringVar(&completeDate, "date", "", "Scheduled date (YYYY-MM-DD)")
	completeCmd.Flags().StringVar(&completeFolder, "folder", "", "Folder id")
	rootCmd.AddCommand(completeCmd)
}

var (
	completeType       string
	completeImportance string
	completeDate       string
	completeFolder     string
)

var completeCmd = &cobra.Command{
	Use:   "complete <user-id> <task-id>",
	Short: "Complete a task and apply its rewards",
	Args:  cobra.ExactArgs(2),
	RunE:  runComplete,
}

func runComplete(cmd *cobra.Command, args []string) error {
	db, game, _, err := openGame()
	if err != nil {
		return err
	}
	defer db.Close()

	result, err := game.CompleteTask(args[0], args[1], domain.TaskInput{
		ScheduledDate: completeDate,
		FolderType:    domain.ActivityType(completeType),
		Importance:    domain.Importance(completeImportance),
		FolderID:      completeFolder,
	})
	if err != nil {
		return err
	}

	r := result.Reward
	fmt.Printf("Reward: %+d coins, %+d xp, %+d health, %+d stress\n", r.Coins, r.XP, r.Health, r.Stress)
	if result.Died {
		fmt.Println("Your world collapsed. Everything has been reset.")
		return nil
	}
	if result.LevelUp {
		fmt.Printf("Level up! %d → %d\n", result.PreviousLevel, result.NewLevel)
	}
	return nil
}
