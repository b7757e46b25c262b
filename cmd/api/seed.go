package api

import (
	"fmt"

	"github.com/scienceol/labportal/pkg/core/login"
	lImpl "github.com/scienceol/labportal/pkg/core/login/login"
	"github.com/scienceol/labportal/pkg/core/seed"
	"github.com/scienceol/labportal/pkg/middleware/db"
	aStore "github.com/scienceol/labportal/pkg/repo/account"
	rStore "github.com/scienceol/labportal/pkg/repo/record"
	vStore "github.com/scienceol/labportal/pkg/repo/savedview"
	"github.com/scienceol/labportal/pkg/utils"
	"github.com/spf13/cobra"
)

func NewSeed() *cobra.Command {
	return &cobra.Command{
		Use:          "seed",
		Long:         "Create the demo analyst, records and a default saved view",
		SilenceUsage: true,
		PreRunE:      initDB,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds := db.DB()
			s := seed.New(ds, accountService(ds), rStore.New(ds), vStore.New(ds))
			if err := s.Run(cmd.Context(), utils.Today()); err != nil {
				return err
			}
			fmt.Printf("Demo data loaded. User: %s / password: %s\n", seed.DemoUsername, seed.DemoPassword)
			return nil
		},
		PostRunE: closeDB,
	}
}

func NewCreateUser() *cobra.Command {
	req := &login.UserReq{}
	cmd := &cobra.Command{
		Use:          "createuser",
		Long:         "Create a portal user or reset an existing one",
		SilenceUsage: true,
		PreRunE:      initDB,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := accountService(db.DB()).SaveUser(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Printf("User %s saved (id %d, staff %t)\n", user.Username, user.ID, user.IsStaff)
			return nil
		},
		PostRunE: closeDB,
	}
	cmd.Flags().StringVar(&req.Username, "username", "", "login name")
	cmd.Flags().StringVar(&req.Password, "password", "", "password")
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().BoolVar(&req.IsStaff, "staff", false, "grant management access")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

// accountService needs no session store: these commands only manage users.
func accountService(ds *db.Datastore) login.Service {
	return lImpl.New(aStore.New(ds), nil, lImpl.Config{})
}
