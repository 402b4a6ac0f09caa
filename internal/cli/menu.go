package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/dishes/internal/httpserver"
	"github.com/mesh-intelligence/dishes/internal/menu"
	"github.com/mesh-intelligence/dishes/pkg/types"
)

// withMenu opens the menu, runs fn and closes the store.
func (a *app) withMenu(cmd *cobra.Command, fn func(ctx context.Context, svc *menu.Service) error) (err error) {
	ctx := cmd.Context()
	svc, st, err := a.openMenu(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil && err == nil {
			err = sysErr(fmt.Errorf("close store: %w", cerr))
		}
	}()
	return fn(ctx, svc)
}

// printMenu writes the result of a mutation.
func (a *app) printMenu(w io.Writer, svc *menu.Service, message string) error {
	if a.flags.jsonMode {
		return printJSON(w, httpserver.Success(svc.List(), message))
	}
	fmt.Fprintln(w, message)
	return nil
}

func (a *app) printDishes(w io.Writer, dishes []string) error {
	if a.flags.jsonMode {
		return printJSON(w, httpserver.SuccessWithCount(dishes))
	}
	for _, d := range dishes {
		fmt.Fprintln(w, d)
	}
	return nil
}

func (a *app) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the dishes on the menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withMenu(cmd, func(_ context.Context, svc *menu.Service) error {
				return a.printDishes(cmd.OutOrStdout(), svc.List())
			})
		},
	}
}

func (a *app) newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a dish to the menu",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withMenu(cmd, func(ctx context.Context, svc *menu.Service) error {
				name := types.NormalizeName(args[0])
				if err := svc.Add(ctx, name); err != nil {
					return menuErr(err)
				}
				return a.printMenu(cmd.OutOrStdout(), svc, fmt.Sprintf("added %q", name))
			})
		},
	}
}

func (a *app) newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a dish from the menu",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withMenu(cmd, func(ctx context.Context, svc *menu.Service) error {
				name := types.NormalizeName(args[0])
				if err := svc.Remove(ctx, name); err != nil {
					return menuErr(err)
				}
				return a.printMenu(cmd.OutOrStdout(), svc, fmt.Sprintf("removed %q", name))
			})
		},
	}
}

func (a *app) newRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a dish",
		Long: `Rename removes <old> and then adds <new>. If adding <new> fails, <old>
is added back at the end of the menu.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withMenu(cmd, func(ctx context.Context, svc *menu.Service) error {
				oldName, newName := types.NormalizeName(args[0]), types.NormalizeName(args[1])
				if err := svc.Rename(ctx, oldName, newName); err != nil {
					return menuErr(err)
				}
				return a.printMenu(cmd.OutOrStdout(), svc, fmt.Sprintf("renamed %q to %q", oldName, newName))
			})
		},
	}
}

func (a *app) newSampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "sample [count]",
		Aliases: []string{"random"},
		Short:   "Pick random dishes without repeats",
		Long: `Sample picks count distinct dishes (default 1) uniformly at random.
A count larger than the menu returns the whole menu in random order.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return &exitError{code: exitUserError, err: fmt.Errorf("%w: %q is not a number", types.ErrInvalidCount, args[0])}
				}
				count = n
			}

			return a.withMenu(cmd, func(_ context.Context, svc *menu.Service) error {
				picked, err := svc.Sample(count)
				if err != nil {
					return menuErr(err)
				}
				if len(picked) == 0 && !a.flags.jsonMode {
					fmt.Fprintln(cmd.ErrOrStderr(), "the menu is empty")
				}
				return a.printDishes(cmd.OutOrStdout(), picked)
			})
		},
	}
}
