//go:build ignore

// Seeds the product catalogue with a starter set of groceries.
//
// Usage:
//
//	go run scripts/seed_products.go
//
// Reads the same environment variables as the API server (see .env.example).
// Existing products with matching IDs are updated rather than duplicated.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"fresh-kart/internal/config"
	"fresh-kart/internal/database"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type seedProduct struct {
	id          string
	name        string
	description string
	price       decimal.Decimal
	minQuantity decimal.Decimal
	category    string
}

func catalogue() []seedProduct {
	half := decimal.NewFromFloat(0.5)
	one := decimal.NewFromInt(1)

	return []seedProduct{
		{"potatoes", "Potatoes", "Fresh farm potatoes, sold by the kilogram", decimal.NewFromInt(45), half, "vegetables"},
		{"tomatoes", "Tomatoes", "Ripe greenhouse tomatoes", decimal.NewFromInt(120), half, "vegetables"},
		{"cucumbers", "Cucumbers", "Crisp short cucumbers", decimal.NewFromInt(95), half, "vegetables"},
		{"onions", "Onions", "Yellow cooking onions", decimal.NewFromInt(30), half, "vegetables"},
		{"carrots", "Carrots", "Washed carrots", decimal.NewFromInt(35), half, "vegetables"},
		{"apples", "Apples", "Sweet seasonal apples", decimal.NewFromInt(90), half, "fruits"},
		{"bananas", "Bananas", "Ripe bananas", decimal.NewFromInt(80), half, "fruits"},
		{"oranges", "Oranges", "Juicy oranges", decimal.NewFromInt(110), half, "fruits"},
		{"milk", "Milk 1L", "Whole milk, 3.2%", decimal.NewFromInt(75), one, "dairy"},
		{"cottage-cheese", "Cottage cheese", "Farm cottage cheese, 9%", decimal.NewFromInt(140), half, "dairy"},
		{"eggs", "Eggs (10)", "Free-range eggs, pack of ten", decimal.NewFromInt(95), one, "dairy"},
		{"bread", "White bread", "Freshly baked loaf", decimal.NewFromInt(40), one, "other"},
		{"buckwheat", "Buckwheat 1kg", "Roasted buckwheat groats", decimal.NewFromInt(85), one, "other"},
		{"sugar", "Sugar 1kg", "White granulated sugar", decimal.NewFromInt(60), one, "other"},
	}
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	query := `
		INSERT INTO products (id, name, description, price, min_quantity, image, category, in_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, '', $6, TRUE, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    description = EXCLUDED.description,
		    price = EXCLUDED.price,
		    min_quantity = EXCLUDED.min_quantity,
		    category = EXCLUDED.category,
		    updated_at = NOW()
	`

	for _, p := range catalogue() {
		_, err := pool.Exec(ctx, query, p.id, p.name, p.description, p.price, p.minQuantity, p.category)
		if err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.id, err)
		}
		logger.Info().Str("product_id", p.id).Str("name", p.name).Msg("product seeded")
	}

	logger.Info().Int("count", len(catalogue())).Msg("catalogue seeding complete")
	return nil
}
