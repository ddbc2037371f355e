package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"fundesk/internal/api"
	"fundesk/internal/models"
	"fundesk/internal/query"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Manage the provider's product catalog",
}

var (
	productsQ       string
	productsPage    int
	productsPerPage int

	productReq api.ProductRequest
)

func productRow(p models.Product) []string {
	stock := strconv.Itoa(p.Stock)
	if p.Unlimited {
		stock = "unlimited"
	}
	return []string{strconv.Itoa(p.ID), p.Name, p.PriceLocale, stock, strconv.Itoa(p.Sold)}
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		values := listValues(productsQ, "", productsPage, productsPerPage)
		return runList(values,
			func(ctx context.Context, v query.Values) (*api.Page[models.Product], error) {
				return client.Products().List(ctx, org, v)
			},
			[]string{"ID", "Name", "Price", "Stock", "Sold"},
			productRow)
	},
}

var productsShowCmd = &cobra.Command{
	Use:   "show [product-id]",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		productID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		ctx, cancel := cmdContext()
		defer cancel()

		p, err := client.Products().Get(ctx, org, productID)
		if err != nil {
			return err
		}
		stock := strconv.Itoa(p.Stock)
		if p.Unlimited {
			stock = "unlimited"
		}
		printDetail([][2]string{
			{"ID", strconv.Itoa(p.ID)},
			{"Name", p.Name},
			{"Price", p.PriceLocale},
			{"Type", p.PriceType},
			{"Stock", stock},
			{"Sold", strconv.Itoa(p.Sold)},
			{"Reserved", strconv.Itoa(p.Reserved)},
			{"Expires", p.ExpireAtLocale},
		})
		return nil
	},
}

var productsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a product",
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		// Local validation answers before any round trip, in the same
		// shape a server 422 would.
		if err := productReq.Validate(); err != nil {
			return err
		}
		return guarded(func() error {
			ctx, cancel := cmdContext()
			defer cancel()
			p, err := client.Products().Create(ctx, org, &productReq)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "product %d created\n", p.ID)
			return nil
		})
	},
}

var productsUpdateCmd = &cobra.Command{
	Use:   "update [product-id]",
	Short: "Update a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		productID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		if err := productReq.Validate(); err != nil {
			return err
		}
		return guarded(func() error {
			ctx, cancel := cmdContext()
			defer cancel()
			p, err := client.Products().Update(ctx, org, productID, &productReq)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "product %d updated\n", p.ID)
			return nil
		})
	},
}

var productsDeleteCmd = &cobra.Command{
	Use:   "delete [product-id]",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		productID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		return guarded(func() error {
			ctx, cancel := cmdContext()
			defer cancel()
			if err := client.Products().Delete(ctx, org, productID); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "product %d deleted\n", productID)
			return nil
		})
	},
}

func productRequestFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&productReq.Name, "name", "", "Product name")
	cmd.Flags().StringVar(&productReq.Description, "description", "", "Product description")
	cmd.Flags().StringVar(&productReq.Price, "price", "", "Price")
	cmd.Flags().StringVar(&productReq.PriceType, "price-type", "regular", "regular, discount_fixed, discount_percentage or free")
	cmd.Flags().IntVar(&productReq.Stock, "stock", 0, "Stock amount")
	cmd.Flags().BoolVar(&productReq.Unlimited, "unlimited", false, "Unlimited stock")
	cmd.Flags().StringVar(&productReq.ExpireAt, "expire-at", "", "Expiry date (YYYY-MM-DD)")
}

func init() {
	productsListCmd.Flags().StringVarP(&productsQ, "q", "q", "", "Search text")
	productsListCmd.Flags().IntVar(&productsPage, "page", 1, "Page number")
	productsListCmd.Flags().IntVar(&productsPerPage, "per-page", 15, "Items per page")

	productRequestFlags(productsCreateCmd)
	productRequestFlags(productsUpdateCmd)

	productsCmd.AddCommand(productsListCmd)
	productsCmd.AddCommand(productsShowCmd)
	productsCmd.AddCommand(productsCreateCmd)
	productsCmd.AddCommand(productsUpdateCmd)
	productsCmd.AddCommand(productsDeleteCmd)
	rootCmd.AddCommand(productsCmd)
}
