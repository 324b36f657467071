package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/emotioncoach/emotion-coach/internal/infrastructure/database"
	"github.com/emotioncoach/emotion-coach/pkg/config"
)

func main() {
	var dir string

	root := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the history store schema with sql-migrate",
	}
	root.PersistentFlags().StringVar(&dir, "dir", "", "migrations directory (default DB_MIGRATIONS_DIR)")

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withDB(dir, func(db *gorm.DB, dir string) error {
					_, err := database.Migrate(db, dir)
					return err
				})
			},
		},
		downCommand(&dir),
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and when they were applied",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withDB(dir, func(db *gorm.DB, dir string) error {
					statuses, err := database.Status(db, dir)
					if err != nil {
						return err
					}
					for _, s := range statuses {
						applied := "pending"
						if s.AppliedAt != nil {
							applied = s.AppliedAt.Format("2006-01-02 15:04:05")
						}
						fmt.Fprintf(cmd.OutOrStdout(), "%-40s %s\n", s.ID, applied)
					}
					return nil
				})
			},
		},
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func downCommand(dir *string) *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back applied migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(*dir, func(db *gorm.DB, dir string) error {
				_, err := database.Rollback(db, dir, steps)
				return err
			})
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back (0 = all)")
	return cmd
}

func withDB(dir string, fn func(db *gorm.DB, dir string) error) error {
	cfg, err := config.LoadDatabase()
	if err != nil {
		return err
	}
	if dir == "" {
		dir = cfg.MigrationsDir
	}

	db, err := database.NewPostgresDB(cfg, true)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.CloseDB(db); err != nil {
			log.Printf("Warning: %v", err)
		}
	}()

	return fn(db, dir)
}
