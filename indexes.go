package main

import (
	"context"
	"time"

	"chairbid/config"
	"chairbid/database"
	"chairbid/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Create the MongoDB indexes and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		config.LoadConfig()
		logger := utils.GetLogger()
		defer logger.Sync() //nolint:errcheck

		s := openMongoStores()
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		defer database.CloseDB(context.Background()) //nolint:errcheck

		if err := ensureIndexes(ctx, s, logger); err != nil {
			return err
		}
		logger.Info("Indexes ready", zap.String("database", config.AppConfig.DatabaseName))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexesCmd)
}
