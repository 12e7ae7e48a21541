package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/andreasstove999/storefront-client-go/internal/api"
	"github.com/andreasstove999/storefront-client-go/internal/cart"
	"github.com/andreasstove999/storefront-client-go/internal/checkout"
	"github.com/andreasstove999/storefront-client-go/internal/config"
	"github.com/andreasstove999/storefront-client-go/internal/profile"
)

func main() {
	logger := log.New(os.Stderr, "[storefront] ", log.LstdFlags|log.Lshortfile)
	cfg := config.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	base := api.NewClient("storefront-backend", cfg.BaseURL, httpClient)
	catalog := api.NewCatalogClient(base)
	orders := api.NewOrderClient(base)
	profiles := api.NewProfileClient(base)

	store, closeStore := newStore(cfg, logger)
	defer closeStore()
	manager := cart.NewManager(store)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "products":
		err = runProducts(ctx, catalog)
	case "cart":
		err = runCart(ctx, os.Args[2:], manager, catalog)
	case "checkout":
		gate := profile.NewGate(profiles)
		confirmer := newStdioConfirmer(os.Stdin, os.Stdout)
		orch := checkout.New(cfg.BuyerID, manager, gate, orders, confirmer, logger)
		err = runCheckout(ctx, orch)
	case "orders":
		err = runOrders(ctx, orders, cfg.BuyerID)
	case "profile":
		err = runProfile(ctx, profiles, cfg.BuyerID)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		logger.Fatalf("%s: %v", os.Args[1], err)
	}
}

func newStore(cfg config.Config, logger *log.Logger) (cart.Store, func()) {
	if cfg.CartStore == "redis" {
		rs := cart.NewRedisStore(cfg.RedisAddr, cfg.BuyerID)
		return rs, func() {
			if err := rs.Close(); err != nil {
				logger.Printf("close redis store: %v", err)
			}
		}
	}
	return cart.NewFileStore(cfg.CartFile), func() {}
}

func runProducts(ctx context.Context, catalog *api.CatalogClient) error {
	products, err := catalog.ListProducts(ctx)
	if err != nil {
		return err
	}
	for _, p := range products {
		fmt.Printf("%-6d %-40s ₫%-12s %s\n", p.ID, p.Name, p.Price, p.SellerName)
	}
	return nil
}

func runCart(ctx context.Context, args []string, manager *cart.Manager, catalog *api.CatalogClient) error {
	if len(args) == 0 {
		return fmt.Errorf("missing cart subcommand (add|list|set-qty|remove|clear)")
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: cart add <productID> [quantity]")
		}
		productID, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[1])
		}
		qty := 1
		if len(args) > 2 {
			if qty, err = strconv.Atoi(args[2]); err != nil {
				return fmt.Errorf("invalid quantity %q", args[2])
			}
		}

		// Snapshot name/price/image/shop from the catalog at add time.
		p, err := catalog.GetProduct(ctx, productID)
		if err != nil {
			return err
		}
		c, err := manager.AddItem(ctx, cart.Item{
			ProductID: strconv.Itoa(p.ID),
			Name:      p.Name,
			Price:     p.Price,
			Image:     p.ImageURL,
			Shop:      p.SellerName,
		}, qty)
		if err != nil {
			return err
		}
		printCart(c)
		return nil

	case "list":
		c, err := manager.Load(ctx)
		if err != nil {
			return err
		}
		printCart(c)
		return nil

	case "set-qty":
		if len(args) < 3 {
			return fmt.Errorf("usage: cart set-qty <productID> <quantity>")
		}
		qty, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[2])
		}
		c, err := manager.SetQuantity(ctx, args[1], qty)
		if err != nil {
			return err
		}
		printCart(c)
		return nil

	case "remove":
		if len(args) < 2 {
			return fmt.Errorf("usage: cart remove <productID>")
		}
		c, err := manager.RemoveItem(ctx, args[1])
		if err != nil {
			return err
		}
		printCart(c)
		return nil

	case "clear":
		return manager.Clear(ctx)

	default:
		return fmt.Errorf("unknown cart subcommand %q", args[0])
	}
}

func runCheckout(ctx context.Context, orch *checkout.Orchestrator) error {
	s, err := orch.Run(ctx)
	if errors.Is(err, checkout.ErrEmptyCart) {
		fmt.Println(checkout.Reason(err))
		return nil
	}
	if err != nil {
		fmt.Println(checkout.Reason(err))
		return err
	}
	switch s.Phase {
	case checkout.PhaseCancelled:
		fmt.Println("Checkout cancelled. Your cart is untouched.")
	case checkout.PhaseCompleted:
		fmt.Printf("Order #%d placed. Thank you!\n", s.OrderID)
	}
	return nil
}

func runOrders(ctx context.Context, orders *api.OrderClient, buyerID int) error {
	items, err := orders.ListOrders(ctx, buyerID)
	if err != nil {
		return err
	}
	for _, it := range items {
		fmt.Printf("#%-6d %-40s x%-3d ₫%-12s %-10s %s\n",
			it.OrderID, it.Name, it.Quantity, it.Subtotal, it.Status, it.OrderDate)
	}
	return nil
}

func runProfile(ctx context.Context, profiles *api.ProfileClient, buyerID int) error {
	p, err := profiles.GetBuyer(ctx, buyerID)
	if err != nil {
		return err
	}
	fmt.Printf("Name:    %s\nEmail:   %s\nPhone:   %s\nAddress: %s\n",
		p.FullName, p.Email, p.Phone, p.AddressLine)
	return nil
}

func printCart(c *cart.Cart) {
	if c.Empty() {
		fmt.Println("Your cart is empty.")
		return
	}
	for _, it := range c.Items {
		fmt.Printf("%-6s %-40s x%-3d ₫%-12s %s\n",
			it.ProductID, it.Name, it.Quantity, it.Subtotal(), it.Shop)
	}
	fmt.Printf("Total: ₫%s\n", c.Total())
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: storefront <command>

commands:
  products                       list the catalog
  cart add <productID> [qty]     add a product to the local cart
  cart list                      show the local cart
  cart set-qty <productID> <qty> change a line's quantity
  cart remove <productID>        remove a line
  cart clear                     empty the cart
  checkout                       place an order from the cart
  orders                         show order history
  profile                        show the buyer profile

environment:
  BASE_URL, HTTP_TIMEOUT, BUYER_ID, CART_STORE, CART_FILE, REDIS_ADDR`)
}
