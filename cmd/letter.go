package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/worklinkhq/worklink/internal/ai"
	"github.com/worklinkhq/worklink/internal/database"
	"github.com/worklinkhq/worklink/internal/letter"
	"github.com/worklinkhq/worklink/pkg/models"
)

var letterCmd = &cobra.Command{
	Use:   "letter",
	Short: "Generate and manage cover letters",
	Long:  "Generate AI-powered cover letters for job listings, then save the ones you like",
}

var generateLetterCmd = &cobra.Command{
	Use:   "generate <job-id>",
	Short: "Generate a cover letter for a job",
	Args:  cobra.ExactArgs(1),
	Example: `  worklink letter generate seed-1
  worklink letter generate seed-1 --resume Resume_2026.pdf --save`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFromCommand(cmd)
		if err != nil {
			return err
		}

		save, _ := cmd.Flags().GetBool("save")
		resume, _ := cmd.Flags().GetString("resume")
		if resume == "" {
			resume = application.Config.DefaultResume
		}

		job, err := database.NewJobRepository(application.DB).GetJob(args[0])
		if err != nil {
			return fmt.Errorf("fetch job: %w", err)
		}

		client := ai.NewClient(application.Config, application.Logger)
		profile, err := database.NewProfileRepository(application.DB).GetProfile()
		if err == nil && profile != nil {
			client.SetProfile(profile)
		} else {
			cmd.Println("Tip: run 'worklink profile init' so letters can mention your background.")
		}

		task := letter.NewTask(client, application.Notifier, application.Logger)

		cmd.Println("Generating cover letter with AI...")
		cmd.Printf("Job: %s at %s\n\n", job.Title, job.Company)

		req := letter.Request{
			JobTitle:    job.Title,
			CompanyName: job.Company,
			ResumeRef:   resume,
		}
		if err := task.Submit(cmd.Context(), req); err != nil {
			return fmt.Errorf("generate cover letter: %w", err)
		}
		if err := task.Wait(cmd.Context()); err != nil {
			return err
		}
		if task.Status() == letter.StatusFailed {
			return fmt.Errorf("generation failed; check your provider configuration and try again")
		}

		cmd.Println(titleStyle.Render("Generated Cover Letter"))
		cmd.Println(task.Result())

		if !save {
			if err := reviewLetter(cmd, task); err != nil {
				return err
			}
			if task.Status() != letter.StatusSaved {
				cmd.Println("Letter discarded. Run again to generate a new one.")
				return nil
			}
		} else {
			// Saving walks the edit path even without changes, so the letter
			// is committed rather than left as a transient result.
			if err := task.StartEdit(); err != nil {
				return err
			}
			if err := task.Save(); err != nil {
				return err
			}
		}

		cl := &models.CoverLetter{
			ID:          uuid.NewString(),
			JobTitle:    job.Title,
			CompanyName: job.Company,
			ResumeRef:   resume,
			Content:     task.Result(),
			GeneratedAt: time.Now(),
		}
		if err := database.NewLetterRepository(application.DB).SaveCoverLetter(cl); err != nil {
			return fmt.Errorf("save cover letter: %w", err)
		}
		cmd.Printf("\n✓ Cover letter saved (ID: %s)\n", cl.ID)
		return nil
	},
}

// reviewLetter lets the user polish the generated text before deciding its
// fate. Returns with the task in Saved (keep it) or Ready (drop it).
func reviewLetter(cmd *cobra.Command, task *letter.Task) error {
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print(labelStyle.Render("\n[s]ave, [e]dit, [d]iscard? "))
		choice, err := reader.ReadString('\n')
		if err != nil {
			return nil // non-interactive stdin: keep nothing
		}

		switch strings.ToLower(strings.TrimSpace(choice)) {
		case "s":
			if err := task.StartEdit(); err != nil {
				return err
			}
			return task.Save()
		case "e":
			if err := task.StartEdit(); err != nil {
				return err
			}
			cmd.Println("Enter the revised letter. Finish with a single '.' on its own line:")
			var lines []string
			for {
				line, err := reader.ReadString('\n')
				if err != nil {
					break
				}
				line = strings.TrimRight(line, "\n")
				if line == "." {
					break
				}
				lines = append(lines, line)
			}
			if err := task.SetDraft(strings.Join(lines, "\n")); err != nil {
				return err
			}
			if err := task.Save(); err != nil {
				return err
			}
			cmd.Println(titleStyle.Render("Revised Cover Letter"))
			cmd.Println(task.Result())
			return nil
		case "d":
			return nil
		default:
			cmd.Println("Please answer s, e, or d.")
		}
	}
}

var listLettersCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved cover letters",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFromCommand(cmd)
		if err != nil {
			return err
		}

		letters, err := database.NewLetterRepository(application.DB).GetAllCoverLetters()
		if err != nil {
			return fmt.Errorf("fetch cover letters: %w", err)
		}
		if len(letters) == 0 {
			cmd.Println("No saved cover letters. Generate one with 'worklink letter generate <job-id> --save'")
			return nil
		}

		cmd.Println(titleStyle.Render("Saved Cover Letters"))
		for i, cl := range letters {
			cmd.Printf("\n%s %s at %s\n", labelStyle.Render(fmt.Sprintf("%d.", i+1)), cl.JobTitle, cl.CompanyName)
			cmd.Printf("   %s %s\n", labelStyle.Render("Generated:"), cl.GeneratedAt.Format("Jan 2, 2006 15:04"))
			cmd.Printf("   %s %s\n", labelStyle.Render("ID:"), cl.ID)
		}
		return nil
	},
}

var showLetterCmd = &cobra.Command{
	Use:   "show <letter-id>",
	Short: "Display a saved cover letter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFromCommand(cmd)
		if err != nil {
			return err
		}

		cl, err := database.NewLetterRepository(application.DB).GetCoverLetter(args[0])
		if err != nil {
			return fmt.Errorf("fetch cover letter: %w", err)
		}

		cmd.Println(titleStyle.Render(fmt.Sprintf("%s at %s", cl.JobTitle, cl.CompanyName)))
		if cl.ResumeRef != "" {
			cmd.Printf("%s %s\n", labelStyle.Render("Resume:"), cl.ResumeRef)
		}
		cmd.Printf("%s %s\n\n", labelStyle.Render("Generated:"), cl.GeneratedAt.Format("Jan 2, 2006 15:04"))
		cmd.Println(cl.Content)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(letterCmd)
	letterCmd.AddCommand(generateLetterCmd)
	letterCmd.AddCommand(listLettersCmd)
	letterCmd.AddCommand(showLetterCmd)

	generateLetterCmd.Flags().Bool("save", false, "Save the generated cover letter")
	generateLetterCmd.Flags().String("resume", "", "Resume reference to mention (defaults to config default_resume)")
}
