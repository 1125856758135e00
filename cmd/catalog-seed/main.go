package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rpupo63/project-catalog-backend/client"
	"github.com/rpupo63/project-catalog-backend/config"
	"github.com/rpupo63/project-catalog-backend/database"
	"github.com/rpupo63/project-catalog-backend/models"
)

var rootCmd = &cobra.Command{
	Use:   "catalog-seed",
	Short: "Seed and inspect the project catalog",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err != nil {
			log.Debug().Err(err).Msg("no .env file loaded")
		}
	},
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Create the baseline tags that do not exist yet",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd.Context(), func(ctx context.Context, db database.Database) error {
			tags, err := db.Seeder().EnsureTags(ctx, database.BaselineTags)
			if err != nil {
				return err
			}
			for _, tag := range tags {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", tag.ID, tag.Name)
			}
			return nil
		})
	},
}

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all catalog data and insert the demo dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return fmt.Errorf("reset deletes every project, tag and image; rerun with --yes to confirm")
		}
		return withDatabase(cmd.Context(), func(ctx context.Context, db database.Database) error {
			projects, err := db.Seeder().Reset(ctx)
			if err != nil {
				return err
			}
			for _, project := range projects {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d tags\n", project.ID, project.Name, len(project.Tags))
			}
			return nil
		})
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Query a running API (CATALOG_API_URL) and print tag usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := config.New()
		api := client.New(config.GetString(c, "CATALOG_API_URL", "http://localhost:8080"))

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		health, err := api.Health(ctx)
		if err != nil {
			return err
		}
		usage, err := api.TagCounts(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "status: %s\n", health.Status)
		for _, tag := range usage {
			fmt.Fprintf(out, "%6d  %s\n", tag.ProjectCount, tag.Name)
		}
		return nil
	},
}

func withDatabase(ctx context.Context, fn func(context.Context, database.Database) error) error {
	c := config.New()
	opts, err := database.OptionsFromConfig(c)
	if err != nil {
		return err
	}
	gdb, err := database.Open(opts)
	if err != nil {
		return err
	}
	if err := models.Migrate(gdb); err != nil {
		return err
	}

	db := database.New(gdb)
	defer db.Close()

	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, db)
}

func init() {
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "confirm that all catalog data should be deleted")
	rootCmd.AddCommand(tagsCmd, resetCmd, checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
