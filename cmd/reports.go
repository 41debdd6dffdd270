package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mberezhnyi/resume-screener/internal/logger"
	"github.com/mberezhnyi/resume-screener/internal/reports"
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Inspect saved screening reports",
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved reports, newest first",
	Run: func(cmd *cobra.Command, _ []string) {
		listReports(cmd)
	},
}

var reportsCompareCmd = &cobra.Command{
	Use:   "compare [job-keyword]",
	Short: "Rank stored candidates by score and cross-reference their skills",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		keyword := ""
		if len(args) > 0 {
			keyword = args[0]
		}
		compareReports(cmd, keyword)
	},
}

func init() {
	rootCmd.AddCommand(reportsCmd)
	reportsCmd.AddCommand(reportsListCmd)
	reportsCmd.AddCommand(reportsCompareCmd)

	reportsListCmd.Flags().String("filter", "", "only candidates whose name contains this keyword")
	reportsCompareCmd.Flags().Bool("no-save", false, "print the comparison without saving it next to the reports")
}

func openStore() *reports.Store {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	store, err := reports.Open(reportsDir(config), logger)
	if err != nil {
		logger.Fatal("opening report store", zap.Error(err))
	}
	return store
}

func listReports(cmd *cobra.Command) {
	store := openStore()
	defer store.Close()

	keyword, _ := cmd.Flags().GetString("filter")
	entries, err := store.List(context.Background(), keyword)
	if err != nil {
		log.Fatalf("listing reports: %s", err)
	}

	if len(entries) == 0 {
		fmt.Println("no reports found")
		return
	}

	for _, entry := range entries {
		approved := " "
		if entry.Approved {
			approved = "*"
		}
		fmt.Printf("%s %3d/100  %-25s %s  %s\n",
			approved,
			entry.Score,
			entry.Candidate,
			entry.CreatedAt.Format("2006-01-02 15:04"),
			entry.File,
		)
	}
}

func compareReports(cmd *cobra.Command, keyword string) {
	store := openStore()
	defer store.Close()

	cmp, err := store.Compare(context.Background(), keyword)
	if err != nil {
		log.Fatalf("comparing reports: %s", err)
	}

	fmt.Println("Ranking:")
	for i, ranked := range cmp.Ranked {
		fmt.Printf("%2d. %3d/100  %s\n", i+1, ranked.Score, ranked.Candidate)
	}

	fmt.Println("\nSkills:")
	for skill, candidates := range cmp.Skills {
		fmt.Printf("  %-20s %s\n", skill, strings.Join(candidates, ", "))
	}

	if noSave, _ := cmd.Flags().GetBool("no-save"); !noSave {
		name, err := store.SaveComparison(cmp)
		if err != nil {
			log.Fatalf("saving comparison: %s", err)
		}
		fmt.Printf("\nsaved to %s\n", name)
	}
}
