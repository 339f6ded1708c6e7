package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"learnhub/config"
	"learnhub/database"
	"learnhub/logger"
	"learnhub/models"
	"learnhub/services"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "learnhubctl",
	Short: "Maintenance commands for the learnhub database",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadConfig()
		if err := logger.Init(config.AppConfig.AppEnv); err != nil {
			return err
		}
		database.ConnectDb()
		services.Init(database.Database.Db, logger.L())
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import-courses",
	Short: "Create courses and lessons from a CSV file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		publish, _ := cmd.Flags().GetBool("publish")

		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer file.Close()

		stats, err := importCourses(database.Database.Db, file, publish)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "courses created: %d\nlessons created: %d\nlessons updated: %d\nrows skipped: %d\n",
			stats.CoursesCreated, stats.LessonsCreated, stats.LessonsUpdated, stats.Skipped)
		return nil
	},
}

var promoteCmd = &cobra.Command{
	Use:   "promote",
	Short: "Grant the ADMIN role to a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		email = strings.ToLower(strings.TrimSpace(email))

		res := database.Database.Db.Model(&models.User{}).
			Where("email = ?", email).
			Update("role", models.RoleAdmin)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("no user with email %q", email)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", email, models.RoleAdmin)
		return nil
	},
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Complete enrollments whose passing attempt was not applied",
	RunE: func(cmd *cobra.Command, args []string) error {
		fixed, err := services.Learning.ReconcileCompletions(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "enrollments completed: %d\n", fixed)
		return nil
	},
}

func init() {
	importCmd.Flags().String("file", "courses.csv", "CSV file with one lesson per row")
	importCmd.Flags().Bool("publish", false, "Publish newly created courses")
	promoteCmd.Flags().String("email", "", "Email of the user to promote")
	_ = promoteCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(promoteCmd)
	rootCmd.AddCommand(reconcileCmd)
}

func main() {
	defer logger.L().Sync()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
