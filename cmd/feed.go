package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/worklinkhq/worklink/internal/database"
	"github.com/worklinkhq/worklink/internal/feed"
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Share and browse updates",
	Long:  "Post updates to your local feed, edit or delete your posts, and like others'",
}

// feedService builds a feed service acting as the profile's user, hydrated
// from the database.
func feedService(cmd *cobra.Command) (*feed.Service, error) {
	application, err := appFromCommand(cmd)
	if err != nil {
		return nil, err
	}

	profile, err := database.NewProfileRepository(application.DB).GetProfile()
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	if profile == nil {
		return nil, fmt.Errorf("no profile found. Run 'worklink profile init' to create one")
	}

	svc := feed.NewService(database.NewPostRepository(application.DB), profile.Session(),
		application.Notifier, application.Logger)
	if err := svc.Load(); err != nil {
		return nil, err
	}
	return svc, nil
}

var postFeedCmd = &cobra.Command{
	Use:   "post",
	Short: "Publish a new post",
	Example: `  worklink feed post --content "Started a new role today!"
  worklink feed post --content "Team offsite" --image https://example.com/photo.jpg`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := feedService(cmd)
		if err != nil {
			return err
		}

		content, _ := cmd.Flags().GetString("content")
		image, _ := cmd.Flags().GetString("image")

		if _, err := svc.CreatePost(content, image); err != nil {
			return fmt.Errorf("publish post: %w", err)
		}
		return nil
	},
}

var listFeedCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the feed, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := feedService(cmd)
		if err != nil {
			return err
		}

		mine, _ := cmd.Flags().GetBool("mine")

		posts := svc.Posts()
		heading := "Feed"
		if mine {
			posts = svc.MyPosts()
			heading = "Your Posts"
		}
		if len(posts) == 0 {
			cmd.Println("The feed is empty. Share something with 'worklink feed post'")
			return nil
		}

		cmd.Println(titleStyle.Render(heading))
		for _, post := range posts {
			cmd.Printf("\n%s %s\n", labelStyle.Render(post.AuthorName), valueStyle.Render(post.CreatedAt.Format("Jan 2, 2006 15:04")))
			cmd.Println(post.Content)
			if post.ImageURL != "" {
				cmd.Printf("%s %s\n", labelStyle.Render("Image:"), post.ImageURL)
			}
			liked := ""
			if post.Liked {
				liked = " (you)"
			}
			cmd.Printf("%s %d%s   %s %d   %s %s\n",
				labelStyle.Render("Likes:"), post.Likes, liked,
				labelStyle.Render("Comments:"), post.Comments,
				labelStyle.Render("ID:"), post.ID)
		}
		return nil
	},
}

var editFeedCmd = &cobra.Command{
	Use:   "edit <post-id>",
	Short: "Edit one of your posts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := feedService(cmd)
		if err != nil {
			return err
		}

		content, _ := cmd.Flags().GetString("content")
		if err := svc.UpdatePost(args[0], content); err != nil {
			return fmt.Errorf("edit post: %w", err)
		}
		return nil
	},
}

var deleteFeedCmd = &cobra.Command{
	Use:   "delete <post-id>",
	Short: "Delete one of your posts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := feedService(cmd)
		if err != nil {
			return err
		}

		if err := svc.DeletePost(args[0]); err != nil {
			return fmt.Errorf("delete post: %w", err)
		}
		return nil
	},
}

var likeFeedCmd = &cobra.Command{
	Use:   "like <post-id>",
	Short: "Like or unlike a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := feedService(cmd)
		if err != nil {
			return err
		}

		if err := svc.ToggleLike(args[0]); err != nil {
			return fmt.Errorf("toggle like: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(feedCmd)
	feedCmd.AddCommand(postFeedCmd)
	feedCmd.AddCommand(listFeedCmd)
	feedCmd.AddCommand(editFeedCmd)
	feedCmd.AddCommand(deleteFeedCmd)
	feedCmd.AddCommand(likeFeedCmd)

	postFeedCmd.Flags().String("content", "", "Post content")
	postFeedCmd.Flags().String("image", "", "Image URL to attach")
	editFeedCmd.Flags().String("content", "", "New post content")
	listFeedCmd.Flags().Bool("mine", false, "Show only your own posts")
}
