package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/pranesta/storefront/internal/api"
	"github.com/pranesta/storefront/internal/domain"
	"github.com/pranesta/storefront/internal/session"
	"github.com/pranesta/storefront/internal/view"
)

type Config struct {
	BackendURL string
}

func loadConfig() *Config {
	return &Config{
		BackendURL: getEnv("BACKEND_URL", "http://localhost:8000"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()
	log.Printf("storefront session against %s", cfg.BackendURL)

	client := api.NewClient(cfg.BackendURL)
	s := session.New(client)
	ctx := context.Background()

	// Initial catalog load for the default "all" selection.
	s.Catalog.Load(ctx, s.Category())

	in := bufio.NewScanner(os.Stdin)
	for {
		render(s)
		fmt.Print("> ")
		if !in.Scan() {
			return
		}
		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return
		}
		dispatch(ctx, s, in, line)
	}
}

func dispatch(ctx context.Context, s *session.Session, in *bufio.Scanner, line string) {
	fields := strings.Fields(line)
	cmd := fields[0]

	switch cmd {
	case "home", "catalog", "contact", "cart":
		s.Views.Set(view.View(cmd))
	case "silver", "oxidised":
		s.Shop(ctx, cmd)
	case "all":
		s.SelectCategory(ctx, "all")
	case "add":
		if len(fields) < 2 {
			fmt.Println("usage: add <item number>")
			return
		}
		addToCart(s, fields[1])
	case "remove":
		if len(fields) < 2 {
			fmt.Println("usage: remove <line number>")
			return
		}
		if i, err := strconv.Atoi(fields[1]); err == nil {
			s.Cart.Remove(i - 1)
		}
	case "checkout":
		s.Checkout.Checkout(ctx)
	case "send":
		fillAndSubmitInquiry(ctx, s, in)
	default:
		fmt.Println("commands: home catalog contact cart | silver oxidised all | add N | remove N | checkout | send | quit")
	}
}

func addToCart(s *session.Session, arg string) {
	i, err := strconv.Atoi(arg)
	products := s.Catalog.Products()
	if err != nil || i < 1 || i > len(products) {
		fmt.Println("no such item")
		return
	}
	p := products[i-1]
	s.Cart.Add(p)
	fmt.Printf("added %s to cart\n", p.Title)
}

// fillAndSubmitInquiry is the form-control layer: it is the only place the
// required fields are enforced.
func fillAndSubmitInquiry(ctx context.Context, s *session.Session, in *bufio.Scanner) {
	if s.Inquiry.Submitting() {
		fmt.Println("Sending...")
		return
	}

	s.Inquiry.SetFields(domain.Inquiry{
		Name:    promptRequired(in, "Name"),
		Email:   promptRequired(in, "Email"),
		Phone:   prompt(in, "Phone (optional)"),
		Message: promptRequired(in, "Your message"),
	})
	s.Inquiry.Submit(ctx)
	fmt.Println(s.Inquiry.Status())
}

func prompt(in *bufio.Scanner, label string) string {
	fmt.Printf("%s: ", label)
	if !in.Scan() {
		return ""
	}
	return strings.TrimSpace(in.Text())
}

func promptRequired(in *bufio.Scanner, label string) string {
	for {
		if v := prompt(in, label); v != "" {
			return v
		}
		fmt.Println("required")
	}
}

func render(s *session.Session) {
	fmt.Println()
	switch s.Views.Current() {
	case view.Home:
		fmt.Println("== Pranesta Jewellery ==")
		fmt.Println("Fine craftsmanship in Silver and Oxidised collections.")
		fmt.Println("Collections: silver | oxidised | all")
		renderProducts(s)
	case view.Catalog:
		title := s.Category()
		if title == "all" {
			title = "All Products"
		}
		fmt.Printf("== %s ==\n", title)
		renderProducts(s)
	case view.Contact:
		fmt.Println("== Send us a query ==")
		fmt.Println("type 'send' to fill in the contact form")
	case view.Cart:
		renderCart(s)
	}

	if msg := s.Status(); msg != "" {
		fmt.Printf("[%s]\n", msg)
	}
}

func renderProducts(s *session.Session) {
	if s.Catalog.Loading() {
		fmt.Println("Loading...")
		return
	}
	for i, p := range s.Catalog.Products() {
		fmt.Printf("%2d. %-28s %-9s ₹%.2f\n", i+1, p.Title, p.Category, p.Price)
	}
}

func renderCart(s *session.Session) {
	fmt.Println("== Your Cart ==")
	lines := s.Cart.Lines()
	if len(lines) == 0 {
		fmt.Println("Your cart is empty.")
		return
	}
	for i, l := range lines {
		fmt.Printf("%2d. %-28s qty %d  ₹%.2f\n", i+1, l.Title, l.Qty, l.Subtotal())
	}
	fmt.Printf("Total: ₹%.2f\n", s.Cart.Total())
}
