package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/worklinkhq/worklink/internal/database"
	"github.com/worklinkhq/worklink/internal/jobs"
	"github.com/worklinkhq/worklink/internal/search"
	"github.com/worklinkhq/worklink/pkg/models"
)

var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Manage job listings",
	Long:  "Browse, search, add, and remove job listings",
}

var listJobsCmd = &cobra.Command{
	Use:   "list",
	Short: "List all job listings",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFromCommand(cmd)
		if err != nil {
			return err
		}

		jobs, err := database.NewJobRepository(application.DB).GetAllJobs()
		if err != nil {
			return fmt.Errorf("fetch jobs: %w", err)
		}
		if len(jobs) == 0 {
			cmd.Println("No jobs found. Add jobs with 'worklink job add'")
			return nil
		}

		cmd.Println(titleStyle.Render("Job Listings"))
		printJobs(cmd, jobs)
		return nil
	},
}

var searchJobsCmd = &cobra.Command{
	Use:   "search",
	Short: "Search and filter job listings",
	Long:  "Filter jobs by free text and structured criteria. All given criteria must match; run without flags to see everything.",
	Example: `  worklink job search --query react
  worklink job search --location remote
  worklink job search --query engineer --type hybrid --experience mid`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFromCommand(cmd)
		if err != nil {
			return err
		}

		query, _ := cmd.Flags().GetString("query")
		location, _ := cmd.Flags().GetString("location")
		jobType, _ := cmd.Flags().GetString("type")
		experience, _ := cmd.Flags().GetString("experience")

		q := search.Query{FreeText: query, Filters: map[string]string{}}
		if location != "" {
			q.Filters[search.FilterLocation] = location
		}
		if jobType != "" {
			q.Filters[search.FilterJobType] = jobType
		}
		if experience != "" {
			q.Filters[search.FilterExperience] = experience
		}

		jobs, err := database.NewJobRepository(application.DB).GetAllJobs()
		if err != nil {
			return fmt.Errorf("fetch jobs: %w", err)
		}

		matched, err := search.Filter(jobs, q)
		if err != nil {
			return fmt.Errorf("filter jobs: %w", err)
		}
		if len(matched) == 0 {
			cmd.Println("No jobs match your criteria.")
			return nil
		}

		cmd.Println(titleStyle.Render(fmt.Sprintf("Matching Jobs (%d)", len(matched))))
		printJobs(cmd, matched)
		return nil
	},
}

var addJobCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a job listing",
	Example: `  worklink job add --title "Software Engineer" --company "acme inc" --location "Remote"
  worklink job add --title "Designer" --company DesignHub --type on-site --experience mid`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFromCommand(cmd)
		if err != nil {
			return err
		}

		title, _ := cmd.Flags().GetString("title")
		company, _ := cmd.Flags().GetString("company")
		location, _ := cmd.Flags().GetString("location")
		jobType, _ := cmd.Flags().GetString("type")
		experience, _ := cmd.Flags().GetString("experience")
		description, _ := cmd.Flags().GetString("description")
		tags, _ := cmd.Flags().GetString("tags")
		applyURL, _ := cmd.Flags().GetString("url")

		if title == "" || company == "" {
			return fmt.Errorf("both --title and --company are required")
		}

		job := &models.Job{
			ID:          uuid.NewString(),
			Title:       title,
			Company:     titleCase(company),
			Location:    location,
			JobType:     jobType,
			Experience:  experience,
			Description: description,
			ApplyURL:    applyURL,
			CreatedAt:   time.Now(),
		}
		if tags != "" {
			job.Tags = strings.Split(tags, ",")
		}

		if err := database.NewJobRepository(application.DB).CreateJob(job); err != nil {
			return fmt.Errorf("save job: %w", err)
		}

		cmd.Printf("✓ Job added: %s at %s (ID: %s)\n", job.Title, job.Company, job.ID)
		return nil
	},
}

var showJobCmd = &cobra.Command{
	Use:   "show <job-id>",
	Short: "Show details of a specific job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFromCommand(cmd)
		if err != nil {
			return err
		}

		job, err := database.NewJobRepository(application.DB).GetJob(args[0])
		if err != nil {
			return fmt.Errorf("fetch job: %w", err)
		}

		cmd.Println(titleStyle.Render(job.Title))
		cmd.Printf("%s %s\n", labelStyle.Render("Company:"), job.Company)
		if job.Location != "" {
			cmd.Printf("%s %s\n", labelStyle.Render("Location:"), job.Location)
		}
		if job.JobType != "" {
			cmd.Printf("%s %s\n", labelStyle.Render("Type:"), job.JobType)
		}
		if job.Experience != "" {
			cmd.Printf("%s %s\n", labelStyle.Render("Experience:"), job.Experience)
		}
		if job.MatchScore > 0 {
			cmd.Printf("%s %d%%\n", labelStyle.Render("Match:"), job.MatchScore)
		}
		cmd.Printf("%s %d\n", labelStyle.Render("Applicants:"), job.Applicants)
		if len(job.Tags) > 0 {
			cmd.Printf("%s %s\n", labelStyle.Render("Tags:"), strings.Join(job.Tags, ", "))
		}
		if job.ApplyURL != "" {
			cmd.Printf("%s %s\n", labelStyle.Render("Apply:"), job.ApplyURL)
		}
		if job.Applied {
			cmd.Printf("%s ✓ You have applied\n", labelStyle.Render("Status:"))
		}
		if job.Description != "" {
			cmd.Println(labelStyle.Render("\nDescription:"))
			cmd.Println(job.Description)
		}
		return nil
	},
}

var applyJobCmd = &cobra.Command{
	Use:   "apply <job-id>",
	Short: "Mark a job as applied (run again to undo)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFromCommand(cmd)
		if err != nil {
			return err
		}

		svc := jobs.NewService(database.NewJobRepository(application.DB),
			application.Notifier, application.Logger)
		if err := svc.Load(); err != nil {
			return err
		}

		job, err := svc.ToggleApplied(args[0])
		if err != nil {
			return fmt.Errorf("apply to job: %w", err)
		}

		if job.Applied {
			cmd.Printf("✓ Applied to %s at %s\n", job.Title, job.Company)
		} else {
			cmd.Printf("✓ Application withdrawn for %s at %s\n", job.Title, job.Company)
		}
		return nil
	},
}

var removeJobCmd = &cobra.Command{
	Use:   "remove <job-id>",
	Short: "Remove a job listing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFromCommand(cmd)
		if err != nil {
			return err
		}
		repo := database.NewJobRepository(application.DB)

		job, err := repo.GetJob(args[0])
		if err != nil {
			return fmt.Errorf("job not found")
		}
		if err := repo.DeleteJob(job.ID); err != nil {
			return fmt.Errorf("remove job: %w", err)
		}

		cmd.Printf("✓ Removed job: %s at %s\n", job.Title, job.Company)
		return nil
	},
}

func printJobs(cmd *cobra.Command, jobs []*models.Job) {
	for i, job := range jobs {
		cmd.Printf("\n%s %s\n", labelStyle.Render(fmt.Sprintf("%d.", i+1)), job.Title)
		cmd.Printf("   %s %s\n", labelStyle.Render("Company:"), job.Company)
		if job.Location != "" {
			cmd.Printf("   %s %s\n", labelStyle.Render("Location:"), job.Location)
		}
		if job.MatchScore > 0 {
			cmd.Printf("   %s %d%%\n", labelStyle.Render("Match:"), job.MatchScore)
		}
		applied := ""
		if job.Applied {
			applied = "  ✓ applied"
		}
		cmd.Printf("   %s %s%s\n", labelStyle.Render("ID:"), job.ID, applied)
	}
}

// titleCase converts a string to title case using proper locale-aware capitalization
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

func init() {
	rootCmd.AddCommand(jobCmd)
	jobCmd.AddCommand(listJobsCmd)
	jobCmd.AddCommand(searchJobsCmd)
	jobCmd.AddCommand(addJobCmd)
	jobCmd.AddCommand(showJobCmd)
	jobCmd.AddCommand(applyJobCmd)
	jobCmd.AddCommand(removeJobCmd)

	searchJobsCmd.Flags().String("query", "", "Free-text search across title, company, and description")
	searchJobsCmd.Flags().String("location", "", "Filter by location")
	searchJobsCmd.Flags().String("type", "", "Filter by job type (remote, hybrid, on-site)")
	searchJobsCmd.Flags().String("experience", "", "Filter by experience level (junior, mid, senior)")

	addJobCmd.Flags().String("title", "", "Job title")
	addJobCmd.Flags().String("company", "", "Company name")
	addJobCmd.Flags().String("location", "", "Job location")
	addJobCmd.Flags().String("type", "", "Job type (remote, hybrid, on-site)")
	addJobCmd.Flags().String("experience", "", "Experience level (junior, mid, senior)")
	addJobCmd.Flags().String("description", "", "Job description")
	addJobCmd.Flags().String("tags", "", "Comma-separated tags")
	addJobCmd.Flags().String("url", "", "Application URL")
}
