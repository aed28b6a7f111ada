package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikolayk812/storefront-go/internal/domain"
)

func newProductsCmd(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse the catalog",
	}

	var filter domain.ProductFilter

	list := &cobra.Command{
		Use:   "list",
		Short: "List products, optionally filtered",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, *cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()

			a.products.ApplyFilter(ctx, filter)
			if msg := a.products.LastError(); msg != "" {
				return errors.New(msg)
			}

			for _, p := range a.products.Products() {
				fmt.Printf("%-24s %-30s %-12s %s\n", p.ID, p.Name, p.Price, p.Category)
			}
			pg := a.products.Pagination()
			fmt.Printf("page %d/%d, %d products total\n", pg.Page, pg.Pages, pg.Total)
			return nil
		},
	}
	list.Flags().StringVar(&filter.Category, "category", "", "filter by category")
	list.Flags().IntVar(&filter.MinPrice, "min-price", 0, "minimum price")
	list.Flags().IntVar(&filter.MaxPrice, "max-price", 0, "maximum price")
	list.Flags().IntVar(&filter.Page, "page", 1, "page number")
	list.Flags().IntVar(&filter.Limit, "limit", 10, "page size")

	show := &cobra.Command{
		Use:   "show <product-id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, *cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()

			a.products.FetchProductByID(ctx, args[0])
			if msg := a.products.LastError(); msg != "" {
				return errors.New(msg)
			}

			p, ok := a.products.Current()
			if !ok {
				return fmt.Errorf("product %s not found", args[0])
			}

			fmt.Printf("%s\n%s\n%s, %d in stock\n%s\n", p.Name, p.Price, p.Category, p.Stock, p.Description)
			return nil
		},
	}

	categories := &cobra.Command{
		Use:   "categories",
		Short: "List catalog categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, *cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()

			a.products.FetchCategories(ctx)
			if msg := a.products.LastError(); msg != "" {
				return errors.New(msg)
			}

			for _, c := range a.products.Categories() {
				fmt.Println(c)
			}
			return nil
		},
	}

	cmd.AddCommand(list, show, categories)
	return cmd
}
