package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/scienceol/labportal/cmd/api"
	"github.com/scienceol/labportal/internal/config"
	"github.com/scienceol/labportal/pkg/middleware/logger"
	"github.com/scienceol/labportal/pkg/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// @title                       Lab Portal API
// @version                     1.0
// @description                 Lab sample records, saved views and dashboard.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	rootCtx := utils.SetupSignalContext()
	root := &cobra.Command{
		SilenceUsage:      true,
		Short:             "labportal",
		Long:              "labportal - lab sample records and saved views",
		PersistentPreRunE: initGlobalResource,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
		PersistentPostRunE: cleanGlobalResource,
	}
	root.SetContext(rootCtx)
	root.AddCommand(api.NewWeb())
	root.AddCommand(api.NewMigrate())
	root.AddCommand(api.NewSeed())
	root.AddCommand(api.NewCreateUser())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func initGlobalResource(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found - using environment variables")
	}

	v := viper.NewWithOptions(viper.ExperimentalBindStruct())
	v.AutomaticEnv()

	conf := config.Global()
	if err := v.Unmarshal(conf); err != nil {
		log.Fatal(err)
	}

	loc, err := time.LoadLocation(conf.Server.Timezone)
	if err != nil {
		log.Printf("unknown timezone %q, using UTC", conf.Server.Timezone)
		loc = time.UTC
	}
	utils.SetLocation(loc)

	logger.Init(&logger.LogConfig{
		Path:     conf.Log.LogPath,
		LogLevel: conf.Log.LogLevel,
		ServiceEnv: logger.ServiceEnv{
			Platform: conf.Server.Platform,
			Service:  conf.Server.Service,
			Env:      conf.Server.Env,
		},
	})

	return nil
}

func cleanGlobalResource(_ *cobra.Command, _ []string) error {
	logger.Close()
	return nil
}
