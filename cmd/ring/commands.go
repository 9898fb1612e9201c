package main

import (
	"fmt"
	"looping/internal/config"
	"looping/internal/ctxlog"
	"looping/internal/db"
	"looping/internal/loop"
	"looping/internal/rec"
	"math/big"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var (
	configFile string
	cfg        config.Config

	Root = &cobra.Command{
		Use:   "ring",
		Short: "Inspect and move the cursors of stored rings.",
		Long: `ring works on the ring store configured in the config file.
Negative indexes must follow "--", e.g. "ring seek days -- -1".`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			c, err := config.Load(ctx, configFile)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			cfg = c

			ctx, _ = ctxlog.Setup(ctx, "ring", c.Log)
			cmd.SetContext(ctxlog.With(ctx, "command", cmd.Name()))
			return nil
		},
	}

	List = &cobra.Command{
		Use:   "list",
		Short: "List ring names",
		Args:  cobra.ExactArgs(0),
		RunE:  withDB(list),
	}

	Show = &cobra.Command{
		Use:   "show <name>",
		Short: "Show the items and cursor of a ring",
		Args:  cobra.ExactArgs(1),
		RunE:  withDB(show),
	}

	Put = &cobra.Command{
		Use:   "put <name> <item>...",
		Short: "Create or replace a ring",
		Args:  cobra.MinimumNArgs(2),
		RunE:  withDB(put),
	}

	Delete = &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a ring",
		Args:  cobra.ExactArgs(1),
		RunE:  withDB(remove),
	}

	Next = &cobra.Command{
		Use:   "next <name>",
		Short: "Move the cursor forward by one",
		Args:  cobra.ExactArgs(1),
		RunE:  withDB(step(1)),
	}

	Prev = &cobra.Command{
		Use:   "prev <name>",
		Short: "Move the cursor backward by one",
		Args:  cobra.ExactArgs(1),
		RunE:  withDB(step(-1)),
	}

	Seek = &cobra.Command{
		Use:   "seek <name> <index>",
		Short: "Move the cursor to a looping index",
		Args:  cobra.ExactArgs(2),
		RunE:  withDB(indexed(db.Seek)),
	}

	Peek = &cobra.Command{
		Use:   "peek <name> <offset>",
		Short: "Show the item at an offset from the cursor",
		Args:  cobra.ExactArgs(2),
		RunE:  withDB(indexed(db.Peek)),
	}

	At = &cobra.Command{
		Use:   "at <name> <index>",
		Short: "Show the item at a looping index of any size",
		Args:  cobra.ExactArgs(2),
		RunE:  withDB(at),
	}
)

func init() {
	Root.PersistentFlags().StringVar(&configFile, "config", config.DefaultFile, "config file")
	Root.AddCommand(List, Show, Put, Delete, Next, Prev, Seek, Peek, At)
}

type runE func(cmd *cobra.Command, args []string) error

func withDB(f runE) runE {
	return func(cmd *cobra.Command, args []string) (err error) {
		defer rec.Error(&err)

		db.Open(cfg.DB)
		defer func() {
			if cerr := ctxlog.Close(cmd.Context(), "db", db.Closer()); err == nil {
				err = cerr
			}
		}()

		return f(cmd, args)
	}
}

func list(cmd *cobra.Command, _ []string) error {
	for _, name := range db.Names() {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}

func show(cmd *cobra.Command, args []string) error {
	ring, err := db.Get(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, item := range ring.Items {
		mark := " "
		if i == ring.Cursor {
			mark = ">"
		}
		fmt.Fprintf(out, "%s %d %s\n", mark, i, item)
	}
	return nil
}

func put(cmd *cobra.Command, args []string) error {
	if err := db.Put(args[0], args[1:]); err != nil {
		return err
	}

	ctxlog.Get(cmd.Context()).Info("ring stored", "ring", args[0], "items", len(args)-1)
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(args[1:], " "))
	return nil
}

func remove(cmd *cobra.Command, args []string) error {
	return db.Delete(args[0])
}

func printItem(cmd *cobra.Command, index int, item string) {
	fmt.Fprintf(cmd.OutOrStdout(), "%d %s\n", index, item)
}

func step(delta int) runE {
	return func(cmd *cobra.Command, args []string) error {
		index, item, err := db.Step(args[0], delta)
		if err != nil {
			return err
		}
		printItem(cmd, index, item)
		return nil
	}
}

func indexed(f func(name string, i int) (int, string, error)) runE {
	return func(cmd *cobra.Command, args []string) error {
		i, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("index %q: %w", args[1], err)
		}

		index, item, err := f(args[0], i)
		if err != nil {
			return err
		}
		printItem(cmd, index, item)
		return nil
	}
}

func at(cmd *cobra.Command, args []string) error {
	i, ok := big.NewInt(0).SetString(args[1], 10)
	if !ok {
		return fmt.Errorf("index %q is not a whole number", args[1])
	}

	ring, err := db.Get(args[0])
	if err != nil {
		return err
	}

	index, err := loop.ResolveBig(ring, i)
	if err != nil {
		return err
	}
	printItem(cmd, index, ring.At(index))
	return nil
}
