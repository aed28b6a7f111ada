package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikolayk812/storefront-go/internal/domain"
)

func newOrdersCmd(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "View and place orders",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List your orders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, *cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()

			a.orders.FetchOrders(ctx)
			if msg := a.orders.LastError(); msg != "" {
				return errors.New(msg)
			}

			for _, o := range a.orders.Orders() {
				fmt.Printf("%-24s %-12s %-8s %s  %s\n",
					o.ID, o.Status, o.PaymentStatus, o.Total, o.CreatedAt.Format("2006-01-02"))
			}
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <order-id>",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, *cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()

			a.orders.FetchOrderByID(ctx, args[0])
			if msg := a.orders.LastError(); msg != "" {
				return errors.New(msg)
			}

			o, ok := a.orders.Current()
			if !ok {
				return fmt.Errorf("order %s not found", args[0])
			}

			fmt.Printf("order %s: %s, payment %s, total %s\n", o.ID, o.Status, o.PaymentStatus, o.Total)
			for _, item := range o.Items {
				fmt.Printf("  %-30s x%-4d %s\n", item.Name, item.Quantity, item.UnitPrice)
			}
			return nil
		},
	}

	var shipping domain.Address

	create := &cobra.Command{
		Use:   "create",
		Short: "Place an order from the server-side cart",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, *cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()

			order, err := a.orders.CreateOrder(ctx, shipping)
			if err != nil {
				return err
			}

			fmt.Printf("order %s placed, total %s\n", order.ID, order.Total)
			return nil
		},
	}
	create.Flags().StringVar(&shipping.Street, "street", "", "street address")
	create.Flags().StringVar(&shipping.City, "city", "", "city")
	create.Flags().StringVar(&shipping.State, "state", "", "state")
	create.Flags().StringVar(&shipping.ZipCode, "zip", "", "zip code")
	_ = create.MarkFlagRequired("street")
	_ = create.MarkFlagRequired("city")

	cmd.AddCommand(list, show, create)
	return cmd
}
