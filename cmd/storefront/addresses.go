package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikolayk812/storefront-go/internal/domain"
)

func newAddressesCmd(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addresses",
		Short: "Manage shipping addresses",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List your shipping addresses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, *cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()

			a.addresses.FetchAddresses(ctx)
			if msg := a.addresses.LastError(); msg != "" {
				return errors.New(msg)
			}

			for _, addr := range a.addresses.Addresses() {
				fmt.Printf("%-24s %s, %s, %s %s\n", addr.ID, addr.Street, addr.City, addr.State, addr.ZipCode)
			}
			return nil
		},
	}

	var address domain.Address

	add := &cobra.Command{
		Use:   "add",
		Short: "Add a shipping address",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, *cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()

			created, err := a.addresses.AddAddress(ctx, address)
			if err != nil {
				return err
			}

			fmt.Printf("address %s added\n", created.ID)
			return nil
		},
	}
	add.Flags().StringVar(&address.Street, "street", "", "street address")
	add.Flags().StringVar(&address.City, "city", "", "city")
	add.Flags().StringVar(&address.State, "state", "", "state")
	add.Flags().StringVar(&address.ZipCode, "zip", "", "zip code")
	_ = add.MarkFlagRequired("street")
	_ = add.MarkFlagRequired("city")

	remove := &cobra.Command{
		Use:   "remove <address-id>",
		Short: "Delete a shipping address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, *cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.addresses.DeleteAddress(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println("address removed")
			return nil
		},
	}

	cmd.AddCommand(list, add, remove)
	return cmd
}

func newProfileCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the signed-in user's profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, *cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()

			profile, err := a.client.Profile(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("%s <%s>", profile.Name, profile.Email)
			if profile.IsAdmin() {
				fmt.Print(" (admin)")
			}
			fmt.Println()
			return nil
		},
	}
}
