package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/worklinkhq/worklink/internal/database"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "View your job search activity",
	Long:  "Display a summary of your posts, saved jobs, applications, and cover letters",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFromCommand(cmd)
		if err != nil {
			return err
		}

		posts, err := database.NewPostRepository(application.DB).GetAllPosts()
		if err != nil {
			return fmt.Errorf("fetch posts: %w", err)
		}
		jobs, err := database.NewJobRepository(application.DB).GetAllJobs()
		if err != nil {
			return fmt.Errorf("fetch jobs: %w", err)
		}
		letters, err := database.NewLetterRepository(application.DB).GetAllCoverLetters()
		if err != nil {
			return fmt.Errorf("fetch cover letters: %w", err)
		}

		applied := 0
		bestScore := 0
		bestJob := ""
		for _, job := range jobs {
			if job.Applied {
				applied++
			}
			if job.MatchScore > bestScore {
				bestScore = job.MatchScore
				bestJob = fmt.Sprintf("%s at %s", job.Title, job.Company)
			}
		}

		likes := 0
		for _, post := range posts {
			likes += post.Likes
		}

		cmd.Println(titleStyle.Render("Activity Summary"))

		cmd.Printf("\n%s\n", labelStyle.Render("Feed"))
		cmd.Printf("  Posts: %d\n", len(posts))
		cmd.Printf("  Likes received: %d\n", likes)

		cmd.Printf("\n%s\n", labelStyle.Render("Jobs"))
		cmd.Printf("  Saved: %d\n", len(jobs))
		cmd.Printf("  Applied: %d\n", applied)
		if bestJob != "" {
			cmd.Printf("  Best match: %s (%d%%)\n", bestJob, bestScore)
		}

		cmd.Printf("\n%s\n", labelStyle.Render("Cover Letters"))
		cmd.Printf("  Saved: %d\n", len(letters))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
