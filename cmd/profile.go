package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/worklinkhq/worklink/internal/database"
	"github.com/worklinkhq/worklink/pkg/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginTop(1).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7"))
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your profile",
	Long:  "Create and update the profile used for your feed identity and cover letters",
}

var initProfileCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize your profile with an interactive wizard",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFromCommand(cmd)
		if err != nil {
			return err
		}
		repo := database.NewProfileRepository(application.DB)

		profile, err := repo.GetProfile()
		if err != nil {
			return fmt.Errorf("check for existing profile: %w", err)
		}
		if profile != nil {
			cmd.Println(titleStyle.Render("Profile Already Exists"))
			cmd.Println("Use 'worklink profile show' to view or 'worklink profile set' to update.")
			return nil
		}

		cmd.Println(titleStyle.Render("Welcome to WorkLink! Let's set up your profile."))

		reader := bufio.NewReader(os.Stdin)

		fmt.Print(labelStyle.Render("Full Name: "))
		name, _ := reader.ReadString('\n')
		name = strings.TrimSpace(name)

		fmt.Print(labelStyle.Render("Headline (e.g. Full Stack Developer): "))
		headline, _ := reader.ReadString('\n')
		headline = strings.TrimSpace(headline)

		fmt.Print(labelStyle.Render("Email: "))
		email, _ := reader.ReadString('\n')
		email = strings.TrimSpace(email)

		fmt.Print(labelStyle.Render("Location: "))
		location, _ := reader.ReadString('\n')
		location = strings.TrimSpace(location)

		fmt.Print(labelStyle.Render("Short bio (optional): "))
		bio, _ := reader.ReadString('\n')
		bio = strings.TrimSpace(bio)

		profile = &models.Profile{
			Name:     name,
			Headline: headline,
			Email:    email,
			Location: location,
			Bio:      bio,
		}
		if err := repo.CreateProfile(profile); err != nil {
			return fmt.Errorf("create profile: %w", err)
		}

		cmd.Println(titleStyle.Render("\n✓ Profile created successfully!"))
		cmd.Println("Next steps:")
		cmd.Println("  1. Configure your AI provider: worklink config set --key ai_provider --value ollama")
		cmd.Println("  2. Browse jobs: worklink job list")
		cmd.Println("  3. Share an update: worklink feed post --content \"Open to work!\"")
		return nil
	},
}

var showProfileCmd = &cobra.Command{
	Use:   "show",
	Short: "Display your profile information",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFromCommand(cmd)
		if err != nil {
			return err
		}

		profile, err := database.NewProfileRepository(application.DB).GetProfile()
		if err != nil {
			return fmt.Errorf("fetch profile: %w", err)
		}
		if profile == nil {
			cmd.Println("No profile found. Run 'worklink profile init' to create one.")
			return nil
		}

		cmd.Println(titleStyle.Render("Your Profile"))
		cmd.Printf("%s %s\n", labelStyle.Render("Name:"), valueStyle.Render(profile.Name))
		if profile.Headline != "" {
			cmd.Printf("%s %s\n", labelStyle.Render("Headline:"), valueStyle.Render(profile.Headline))
		}
		cmd.Printf("%s %s\n", labelStyle.Render("Email:"), valueStyle.Render(profile.Email))
		cmd.Printf("%s %s\n", labelStyle.Render("Location:"), valueStyle.Render(profile.Location))
		if profile.Bio != "" {
			cmd.Printf("%s %s\n", labelStyle.Render("Bio:"), valueStyle.Render(profile.Bio))
		}

		// The profile page doubles as the "your posts" view of the feed.
		posts, err := database.NewPostRepository(application.DB).GetPostsByAuthor(profile.Session().UserID)
		if err == nil && len(posts) > 0 {
			cmd.Println(labelStyle.Render("\nYour Posts:"))
			for _, post := range posts {
				cmd.Printf("  • %s (%d likes, %s)\n", post.Content, post.Likes, post.CreatedAt.Format("Jan 2"))
			}
		}
		return nil
	},
}

var setProfileCmd = &cobra.Command{
	Use:   "set",
	Short: "Update a profile field",
	Example: `  worklink profile set --name "John Doe"
  worklink profile set --headline "Backend Engineer"
  worklink profile set --location "San Francisco, CA"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFromCommand(cmd)
		if err != nil {
			return err
		}
		repo := database.NewProfileRepository(application.DB)

		profile, err := repo.GetProfile()
		if err != nil {
			return fmt.Errorf("fetch profile: %w", err)
		}
		if profile == nil {
			cmd.Println("No profile found. Run 'worklink profile init' to create one.")
			return nil
		}

		name, _ := cmd.Flags().GetString("name")
		headline, _ := cmd.Flags().GetString("headline")
		email, _ := cmd.Flags().GetString("email")
		location, _ := cmd.Flags().GetString("location")
		bio, _ := cmd.Flags().GetString("bio")

		updated := false
		if name != "" {
			profile.Name = name
			updated = true
		}
		if headline != "" {
			profile.Headline = headline
			updated = true
		}
		if email != "" {
			profile.Email = email
			updated = true
		}
		if location != "" {
			profile.Location = location
			updated = true
		}
		if bio != "" {
			profile.Bio = bio
			updated = true
		}

		if !updated {
			cmd.Println("No fields to update. Use flags like --name, --headline, etc.")
			return nil
		}

		if err := repo.UpdateProfile(profile); err != nil {
			return fmt.Errorf("update profile: %w", err)
		}

		cmd.Println("✓ Profile updated successfully!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(initProfileCmd)
	profileCmd.AddCommand(showProfileCmd)
	profileCmd.AddCommand(setProfileCmd)

	// Flags for set command
	setProfileCmd.Flags().String("name", "", "Update name")
	setProfileCmd.Flags().String("headline", "", "Update headline")
	setProfileCmd.Flags().String("email", "", "Update email")
	setProfileCmd.Flags().String("location", "", "Update location")
	setProfileCmd.Flags().String("bio", "", "Update bio")
}
