package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"os"
	"time"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Global flags
	apiURL := "http://localhost:8080"
	if envURL := os.Getenv("API_URL"); envURL != "" {
		apiURL = envURL
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "full":
		fullCmd(apiURL, args)
	case "catalog":
		catalogCmd(apiURL, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Smoke - end-to-end checks against a running pet shop API

USAGE:
  smoke <command> [options]

COMMANDS:
  full      Register, log in and out, manage the catalog as admin, upload a file and reset a password
  catalog   Print the newest products
  help      Show this help message

ENVIRONMENT:
  API_URL   Backend API URL (default: http://localhost:8080)

EXAMPLES:
  # Run every check using the seeded admin account
  smoke full

  # Use a different admin
  smoke full --admin-email=ops@example.com --admin-password=secret

  # Show the five newest products
  smoke catalog --limit=5`)
}

func fail(step string, err error) {
	fmt.Printf("FAILED\n  %s: %v\n", step, err)
	os.Exit(1)
}

func fullCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("full", flag.ExitOnError)
	adminEmail := fs.String("admin-email", "admin@buckhill.co.uk", "Admin account email")
	adminPassword := fs.String("admin-password", "admin", "Admin account password")
	keep := fs.Bool("keep", false, "Keep the created category and product")
	fs.Parse(args)

	client := NewAPIClient(apiURL)
	email := fmt.Sprintf("smoke_%d@example.com", time.Now().UnixNano())
	password := "smokepassword1"

	fmt.Println("=== Pet Shop Smoke Test ===")
	fmt.Println()

	// 1. Customer session lifecycle
	fmt.Print("Registering customer... ")
	user, err := client.RegisterUser(email, password)
	if err != nil {
		fail("register", err)
	}
	fmt.Printf("OK (uuid: %s)\n", user.UUID)

	fmt.Print("Logging in... ")
	token, err := client.Login(email, password, false)
	if err != nil {
		fail("login", err)
	}
	if _, err := client.Me(token); err != nil {
		fail("profile", err)
	}
	fmt.Println("OK")

	fmt.Print("Uploading image... ")
	var img bytes.Buffer
	if err := png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		fail("encode", err)
	}
	file, err := client.UploadFile(token, "smoke.png", img.Bytes())
	if err != nil {
		fail("upload", err)
	}
	downloaded, err := client.DownloadFile(token, file.UUID)
	if err != nil {
		fail("download", err)
	}
	if !bytes.Equal(downloaded, img.Bytes()) {
		fail("download", errors.New("content mismatch"))
	}
	fmt.Printf("OK (%s, %d bytes)\n", file.Type, file.Size)

	fmt.Print("Logging out... ")
	if err := client.Logout(token, false); err != nil {
		fail("logout", err)
	}
	var statusErr *StatusError
	if _, err := client.Me(token); !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusUnauthorized {
		fail("revocation", fmt.Errorf("expected 401 after logout, got %v", err))
	}
	fmt.Println("OK (token revoked)")

	// 2. Password reset
	fmt.Print("Resetting password... ")
	resetToken, err := client.ForgotPassword(email)
	if err != nil {
		fail("forgot password", err)
	}
	password = "smokepassword2"
	if err := client.ResetPassword(resetToken, email, password); err != nil {
		fail("reset password", err)
	}
	if _, err := client.Login(email, password, false); err != nil {
		fail("login with new password", err)
	}
	fmt.Println("OK")

	// 3. Admin catalog management
	fmt.Print("Logging in as admin... ")
	adminToken, err := client.Login(*adminEmail, *adminPassword, true)
	if err != nil {
		fail("admin login", err)
	}
	fmt.Println("OK")

	fmt.Print("Creating catalog entries... ")
	suffix := time.Now().UnixNano() % 100000
	category, err := client.CreateCategory(adminToken, fmt.Sprintf("Smoke %d", suffix), fmt.Sprintf("smoke-%d", suffix))
	if err != nil {
		fail("create category", err)
	}
	product, err := client.CreateProduct(adminToken, category.UUID, "Smoke Treats", "4.99")
	if err != nil {
		fail("create product", err)
	}
	fmt.Printf("OK (category: %s, product: %s)\n", category.Slug, product.UUID)

	if !*keep {
		fmt.Print("Cleaning up... ")
		if err := client.DeleteProduct(adminToken, product.UUID); err != nil {
			fail("delete product", err)
		}
		// Soft-deleted products still pin their category.
		if err := client.DeleteCategory(adminToken, category.UUID); !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusUnprocessableEntity {
			fail("delete category", fmt.Errorf("expected 422 for a category in use, got %v", err))
		}
		fmt.Println("OK")
	}

	if err := client.Logout(adminToken, true); err != nil {
		fail("admin logout", err)
	}

	fmt.Println()
	fmt.Println("=========================================")
	fmt.Println("  ALL CHECKS PASSED")
	fmt.Println("=========================================")
}

func catalogCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("catalog", flag.ExitOnError)
	limit := fs.Int("limit", 10, "Number of products to show (1-100)")
	fs.Parse(args)

	client := NewAPIClient(apiURL)
	page, err := client.ListProducts(*limit)
	if err != nil {
		fmt.Printf("Failed to list products: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%d products in catalog\n\n", page.Products.Total)
	for _, p := range page.Products.Data {
		fmt.Printf("  %-36s  %-30s  %s\n", p.UUID, p.Title, p.Price)
	}
}
