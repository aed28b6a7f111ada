package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newCartCmd(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the cart",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the cart",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), *cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()

			printCart(a)
			return nil
		},
	}

	var qty int

	add := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, *cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()

			// The line item snapshots name and price, so look the product up first.
			product, err := a.client.GetProduct(ctx, args[0])
			if err != nil {
				return err
			}

			a.cart.AddItem(ctx, product, qty)
			if msg := a.cart.LastError(); msg != "" {
				fmt.Println("warning:", msg)
			}

			printCart(a)
			return nil
		},
	}
	add.Flags().IntVar(&qty, "qty", 1, "quantity to add")

	update := &cobra.Command{
		Use:   "update <product-id>",
		Short: "Set a line item's quantity (0 removes it)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, *cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()

			a.cart.UpdateItemQuantity(ctx, args[0], qty)
			if msg := a.cart.LastError(); msg != "" {
				fmt.Println("warning:", msg)
			}

			printCart(a)
			return nil
		},
	}
	update.Flags().IntVar(&qty, "qty", 1, "new quantity")

	remove := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a line item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, *cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()

			a.cart.RemoveItem(ctx, args[0])
			if msg := a.cart.LastError(); msg != "" {
				fmt.Println("warning:", msg)
			}

			printCart(a)
			return nil
		},
	}

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, *cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()

			a.cart.ClearCart(ctx)
			if msg := a.cart.LastError(); msg != "" {
				fmt.Println("warning:", msg)
			}

			fmt.Println("cart cleared")
			return nil
		},
	}

	pull := &cobra.Command{
		Use:   "pull",
		Short: "Refresh catalog and cart from the backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), *cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				a.products.FetchProducts(ctx)
				if msg := a.products.LastError(); msg != "" {
					return errors.New(msg)
				}
				return nil
			})
			g.Go(func() error {
				a.cart.FetchCart(ctx)
				if msg := a.cart.LastError(); msg != "" {
					return errors.New(msg)
				}
				return nil
			})
			if err := g.Wait(); err != nil {
				return err
			}

			printCart(a)
			return nil
		},
	}

	cmd.AddCommand(show, add, update, remove, clear, pull)
	return cmd
}

func printCart(a *app) {
	items := a.cart.Items()
	if len(items) == 0 {
		fmt.Println("cart is empty")
		return
	}

	for _, item := range items {
		fmt.Printf("%-24s %-30s x%-4d %s\n", item.ProductID, item.Name, item.Quantity, item.UnitPrice)
	}
	fmt.Printf("%d items, total %s\n", a.cart.TotalItems(), a.cart.TotalPrice())
}
