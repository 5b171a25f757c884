package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/catalog/app/repositories"
	"github.com/shashiranjanraj/catalog/config"
	"github.com/shashiranjanraj/catalog/internal/server"
)

// catalog db:indexes: create the unique indexes on the user collection.
var dbIndexesCmd = &cobra.Command{
	Use:   "db:indexes",
	Short: "Create the database indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		ctx := context.Background()
		db, err := server.Connect(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close(ctx)

		if err := db.EnsureIndexes(ctx, repositories.Indexes...); err != nil {
			return err
		}
		for _, idx := range repositories.Indexes {
			fmt.Printf("✅ %s.%s (unique=%t)\n", idx.Collection, idx.Field, idx.Unique)
		}
		return nil
	},
}
