package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	kio "github.com/kinview/kinview/pkg/io"
	"github.com/kinview/kinview/pkg/source"
	"github.com/kinview/kinview/pkg/source/mongo"
)

// dbCommand groups the MongoDB commands.
func (c *CLI) dbCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Copy datasets to and from MongoDB",
	}

	cmd.AddCommand(c.dbPushCommand())
	cmd.AddCommand(c.dbPullCommand())

	return cmd
}

// mongoURI returns the target URI: the flag, then data.mongo_uri, then a
// mongodb:// data location.
func (c *CLI) mongoURI(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if c.Config.Data.MongoURI != "" {
		return c.Config.Data.MongoURI, nil
	}
	if location, _ := c.dataLocation(); source.IsMongoURI(location) {
		return location, nil
	}
	return "", fmt.Errorf("no MongoDB URI: pass --uri or set data.mongo_uri")
}

// dbPushCommand creates the "db push" subcommand.
func (c *CLI) dbPushCommand() *cobra.Command {
	var uri string

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Replace the MongoDB dataset with the local one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			target, err := c.mongoURI(uri)
			if err != nil {
				return err
			}
			g, err := c.loadGraph(ctx)
			if err != nil {
				return err
			}
			_, database := c.dataLocation()

			store, err := mongo.Open(ctx, target, database)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Writing %d people...", g.Len()))
			spinner.Start()
			if err := store.Save(ctx, g); err != nil {
				spinner.StopWithError("Push failed")
				return err
			}
			spinner.StopWithSuccess(fmt.Sprintf("Pushed %d people to %s", g.Len(), store.Name()))
			return nil
		},
	}

	cmd.Flags().StringVar(&uri, "uri", "", "MongoDB URI (default: data.mongo_uri)")

	return cmd
}

// dbPullCommand creates the "db pull" subcommand.
func (c *CLI) dbPullCommand() *cobra.Command {
	var (
		uri        string
		partitions int
	)

	cmd := &cobra.Command{
		Use:   "pull <dir>",
		Short: "Export the MongoDB dataset to a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			target, err := c.mongoURI(uri)
			if err != nil {
				return err
			}
			_, database := c.dataLocation()

			store, err := mongo.Open(ctx, target, database)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			g, err := store.Load(ctx)
			if err != nil {
				return err
			}
			if err := kio.Export(ctx, args[0], &kio.Dataset{Graph: g}, partitions); err != nil {
				return err
			}
			printSuccess("Exported %d people", g.Len())
			printFile(args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&uri, "uri", "", "MongoDB URI (default: data.mongo_uri)")
	cmd.Flags().IntVar(&partitions, "partitions", 4, "number of details files")

	return cmd
}
