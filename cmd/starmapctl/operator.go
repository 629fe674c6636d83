package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"starmap/cmd"
	"starmap/internal/core/application/usecases/commands"
	"starmap/internal/core/application/usecases/queries"

	"github.com/spf13/cobra"
)

// openRoot builds the composition root against the persistent store.
func openRoot(c *cobra.Command) (*cmd.CompositionRoot, error) {
	envFile, _ := c.Flags().GetString("env-file")
	cfg, err := cmd.LoadConfig(envFile)
	if err != nil {
		return nil, err
	}
	if cfg.StoreDriver != cmd.StoreDriverPostgres {
		return nil, cmd.ErrStoreIsNotPersistent
	}
	if err := cfg.Database().Validate(); err != nil {
		return nil, fmt.Errorf("database settings: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(c.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.LogLevel}))
	return cmd.NewCompositionRoot(cfg, logger)
}

func parseOrderID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("order id %q: %w", arg, err)
	}
	return id, nil
}

func locksCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "locks",
		Short: "Manage order claims",
	}
	c.AddCommand(&cobra.Command{
		Use:   "release <orderId>",
		Short: "Drop the claim of an order so the next delivery processes it",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			orderID, err := parseOrderID(args[0])
			if err != nil {
				return err
			}
			command, err := commands.NewReleaseLockCommand(orderID)
			if err != nil {
				return err
			}

			root, err := openRoot(c)
			if err != nil {
				return err
			}
			defer root.Close()

			handler := root.CreateReleaseLockCommandHandler()
			if err := handler.Handle(c.Context(), command); err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "released claim of order %d\n", orderID)
			return nil
		},
	})
	c.AddCommand(&cobra.Command{
		Use:   "sweep",
		Short: "Remove every expired claim",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			root, err := openRoot(c)
			if err != nil {
				return err
			}
			defer root.Close()

			handler := root.CreateSweepExpiredLocksCommandHandler()
			n, err := handler.Handle(c.Context(), commands.NewSweepExpiredLocksCommand())
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "removed %d expired claims\n", n)
			return nil
		},
	})
	return c
}

func ordersCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "orders",
		Short: "Inspect processed orders",
	}
	c.AddCommand(&cobra.Command{
		Use:   "show <orderId>",
		Short: "Print the stored documents and claim of an order as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			orderID, err := parseOrderID(args[0])
			if err != nil {
				return err
			}
			query, err := queries.NewGetOrderArtifactsQuery(orderID)
			if err != nil {
				return err
			}

			root, err := openRoot(c)
			if err != nil {
				return err
			}
			defer root.Close()

			response, err := root.CreateGetOrderArtifactsQueryHandler().Handle(c.Context(), query)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(c.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(response)
		},
	})
	return c
}
