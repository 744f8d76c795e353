// seed-demo loads a small set of demo clients and catalog items so the API
// can be exercised against a fresh database.
//
// Usage: go run ./cmd/seed-demo
package main

import (
	"context"
	"log"

	"github.com/ThathsaraniLiyanage/MiniSO-sales-order-management-system/internal/db"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	log.Println("Seeding demo clients...")
	_, err = tx.Exec(ctx, `
		INSERT INTO clients (customer_name, address1, address2, state, post_code)
		VALUES
		    ('Acme Traders',       '12 Harbour Rd',  'Unit 4',  'WA',  '6000'),
		    ('Northside Hardware', '88 King St',     '',        'NSW', '2000'),
		    ('Pacific Supplies',   '3 Wharf Lane',   'Level 2', 'QLD', '4000')
		ON CONFLICT DO NOTHING;
	`)
	if err != nil {
		log.Fatalf("Failed to seed clients: %v", err)
	}

	log.Println("Seeding demo items...")
	_, err = tx.Exec(ctx, `
		INSERT INTO items (code, description, unit_price)
		VALUES
		    ('WID-100', 'Widget, standard',      10.0000),
		    ('WID-200', 'Widget, heavy duty',    24.5000),
		    ('BRK-010', 'Mounting bracket',       3.7500),
		    ('SVC-001', 'On-site installation', 120.0000)
		ON CONFLICT (code) DO NOTHING;
	`)
	if err != nil {
		log.Fatalf("Failed to seed items: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Failed to commit: %v", err)
	}
	log.Println("Demo data loaded.")
}
