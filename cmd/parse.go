package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/mberezhnyi/resume-screener/internal/resume"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a resume file and print the extracted profile as JSON",
	Run: func(cmd *cobra.Command, _ []string) {
		parse(cmd)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringP("resume", "r", "", "path to the resume file (pdf, docx, html or txt)")
	parseCmd.Flags().Bool("full-text", false, "include the raw resume text in the output")

	if err := parseCmd.MarkFlagRequired("resume"); err != nil {
		log.Fatal(err)
	}
}

func parse(cmd *cobra.Command) {
	path, _ := cmd.Flags().GetString("resume")
	profile, err := resume.Parse(path)
	if err != nil {
		log.Fatalf("parsing resume: %s", err)
	}

	if full, _ := cmd.Flags().GetBool("full-text"); !full {
		profile = profile.WithoutFullText()
	}

	pretty, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		log.Fatalf("encoding profile: %s", err)
	}

	fmt.Println(string(pretty))
}
