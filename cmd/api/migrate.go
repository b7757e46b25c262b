package api

import (
	"github.com/scienceol/labportal/pkg/middleware/db"
	"github.com/scienceol/labportal/pkg/repo/migrate"
	"github.com/spf13/cobra"
)

func NewMigrate() *cobra.Command {
	return &cobra.Command{
		Use:          "migrate",
		Long:         "Run database migrations",
		SilenceUsage: true,
		PreRunE:      initDB,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return migrate.Table(cmd.Context(), db.DB())
		},
		PostRunE: closeDB,
	}
}

func initDB(cmd *cobra.Command, _ []string) error {
	db.InitDB(cmd.Context(), dbConfig())
	return nil
}

func closeDB(cmd *cobra.Command, _ []string) error {
	db.CloseDB(cmd.Context())
	return nil
}
