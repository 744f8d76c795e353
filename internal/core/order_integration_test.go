package core_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/ThathsaraniLiyanage/MiniSO-sales-order-management-system/internal/core"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	_ = godotenv.Load("../../.env")

	// Use a dedicated TEST database to avoid wiping the live app database.
	// Set TEST_DATABASE_URL in your .env or environment to run integration tests.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set — skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	schema, err := os.ReadFile("../../migrations/001_init.sql")
	if err != nil {
		t.Fatalf("Failed to read schema: %v", err)
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		t.Fatalf("Failed to apply schema: %v", err)
	}

	// Clean and seed test DB
	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE sales_order_lines, sales_orders, items, clients RESTART IDENTITY CASCADE;

		INSERT INTO clients (id, customer_name, address1, address2, address3, state, post_code) VALUES
		(1, 'Acme Traders', '12 Harbour Rd', 'Unit 4', '', 'WA', '6000'),
		(2, 'Northside Hardware', '88 King St', '', '', 'NSW', '2000');

		INSERT INTO items (id, code, description, unit_price, is_active) VALUES
		(1, 'WID-100', 'Widget, standard', 10.0000, true),
		(2, 'BRK-010', 'Mounting bracket', 0.8900, true),
		(3, 'OLD-001', 'Discontinued part', 5.0000, false);

		SELECT setval('clients_id_seq', 100);
		SELECT setval('items_id_seq', 100);
	`)
	if err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}

	return pool
}

func orderInputFixture() core.OrderInput {
	return core.OrderInput{
		InvoiceNo:   "INV-1",
		InvoiceDate: "2025-01-15",
		ReferenceNo: "PO-77",
		ClientID:    1,
		Lines: []core.LineInput{
			{ItemID: 1, Note: "first batch", Quantity: dec("3"), TaxRate: dec("7")},
		},
	}
}

func TestOrderService_CreateAndGet(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewOrderService(pool)
	ctx := context.Background()

	created, err := svc.Create(ctx, orderInputFixture())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if got.InvoiceNo != "INV-1" || got.InvoiceDate != "2025-01-15" || got.ReferenceNo != "PO-77" {
		t.Errorf("Header mismatch: %+v", got)
	}
	if got.CustomerName != "Acme Traders" || got.Address1 != "12 Harbour Rd" || got.State != "WA" || got.PostCode != "6000" {
		t.Errorf("Client snapshot mismatch: %+v", got)
	}
	if !got.IsActive {
		t.Errorf("New order should be active")
	}
	if got.CreatedAt.IsZero() {
		t.Errorf("CreatedAt not set")
	}
	if got.ModifiedAt != nil {
		t.Errorf("ModifiedAt should be nil on create, got %v", got.ModifiedAt)
	}

	if len(got.Lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(got.Lines))
	}
	l := got.Lines[0]
	if l.LineNumber != 1 {
		t.Errorf("LineNumber = %d, want 1", l.LineNumber)
	}
	if l.ItemCode != "WID-100" || l.Description != "Widget, standard" || !l.UnitPrice.Equal(dec("10")) {
		t.Errorf("Item snapshot mismatch: %+v", l)
	}
	if l.Note != "first batch" {
		t.Errorf("Note = %q", l.Note)
	}
	if !l.ExclAmount.Equal(dec("30.00")) || !l.TaxAmount.Equal(dec("2.10")) || !l.InclAmount.Equal(dec("32.10")) {
		t.Errorf("Line amounts = %s / %s / %s", l.ExclAmount, l.TaxAmount, l.InclAmount)
	}
	if !got.TotalExclAmount.Equal(dec("30.00")) || !got.TotalTaxAmount.Equal(dec("2.10")) || !got.TotalInclAmount.Equal(dec("32.10")) {
		t.Errorf("Totals = %s / %s / %s", got.TotalExclAmount, got.TotalTaxAmount, got.TotalInclAmount)
	}
}

func TestOrderService_CreateValidation(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewOrderService(pool)
	_, err := svc.Create(context.Background(), core.OrderInput{})
	if !core.IsValidation(err) {
		t.Fatalf("err = %v, want VALIDATION_ERROR", err)
	}
	var cerr *core.Error
	if !errors.As(err, &cerr) || len(cerr.Messages) < 4 {
		t.Errorf("Expected all violations collected, got %v", err)
	}
}

func TestOrderService_CreateClientNotFound(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewOrderService(pool)
	in := orderInputFixture()
	in.ClientID = 999
	_, err := svc.Create(context.Background(), in)
	if !core.IsReferenceNotFound(err) {
		t.Fatalf("err = %v, want REFERENCE_NOT_FOUND", err)
	}
}

func TestOrderService_CreateInactiveItem(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewOrderService(pool)
	in := orderInputFixture()
	in.Lines[0].ItemID = 3
	_, err := svc.Create(context.Background(), in)
	if !core.IsReferenceNotFound(err) {
		t.Fatalf("err = %v, want REFERENCE_NOT_FOUND", err)
	}
}

func TestOrderService_DuplicateInvoice(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewOrderService(pool)
	ctx := context.Background()

	if _, err := svc.Create(ctx, orderInputFixture()); err != nil {
		t.Fatalf("First create failed: %v", err)
	}
	_, err := svc.Create(ctx, orderInputFixture())
	if !core.IsDuplicateKey(err) {
		t.Fatalf("err = %v, want DUPLICATE_KEY", err)
	}
}

func TestOrderService_ConcurrentCreateSameInvoice(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewOrderService(pool)
	ctx := context.Background()

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(ctx, orderInputFixture())
		}(i)
	}
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case core.IsDuplicateKey(err):
			dup++
		default:
			t.Errorf("Unexpected error: %v", err)
		}
	}
	if ok != 1 || dup != 1 {
		t.Errorf("Got %d successes and %d duplicates, want exactly 1 of each", ok, dup)
	}
}

func TestOrderService_Replace(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewOrderService(pool)
	ctx := context.Background()

	created, err := svc.Create(ctx, orderInputFixture())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	replacement := core.OrderInput{
		InvoiceNo:   "INV-1R",
		InvoiceDate: "2025-02-01",
		ClientID:    2,
		Lines: []core.LineInput{
			{ItemID: 1, Quantity: dec("1"), TaxRate: dec("0")},
			{ItemID: 1, Quantity: dec("1"), TaxRate: dec("10")},
		},
	}
	got, err := svc.Replace(ctx, created.ID, replacement)
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	if got.InvoiceNo != "INV-1R" || got.ClientID != 2 {
		t.Errorf("Header not replaced: %+v", got)
	}
	if got.CustomerName != "Northside Hardware" {
		t.Errorf("Client snapshot not refreshed: %q", got.CustomerName)
	}
	if len(got.Lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(got.Lines))
	}
	for i, l := range got.Lines {
		if l.LineNumber != i+1 {
			t.Errorf("Line %d has LineNumber %d", i, l.LineNumber)
		}
	}
	if !got.TotalExclAmount.Equal(dec("20.00")) || !got.TotalTaxAmount.Equal(dec("1.00")) || !got.TotalInclAmount.Equal(dec("21.00")) {
		t.Errorf("Totals = %s / %s / %s, want 20.00 / 1.00 / 21.00",
			got.TotalExclAmount, got.TotalTaxAmount, got.TotalInclAmount)
	}
	if !got.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt changed on replace")
	}
	if got.ModifiedAt == nil {
		t.Errorf("ModifiedAt not set on replace")
	}
}

func TestOrderService_ReplaceNotFound(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewOrderService(pool)
	_, err := svc.Replace(context.Background(), 9999, orderInputFixture())
	if !core.IsNotFound(err) {
		t.Fatalf("err = %v, want NOT_FOUND", err)
	}
}

func TestOrderService_ReplaceSoftDeletedOrder(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewOrderService(pool)
	ctx := context.Background()

	created, err := svc.Create(ctx, orderInputFixture())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := svc.SoftDelete(ctx, created.ID); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}

	_, err = svc.Replace(ctx, created.ID, orderInputFixture())
	if !core.IsNotFound(err) {
		t.Fatalf("err = %v, want NOT_FOUND", err)
	}
}

func TestOrderService_FailedReplaceLeavesOrderUnchanged(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewOrderService(pool)
	ctx := context.Background()

	created, err := svc.Create(ctx, orderInputFixture())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	bad := orderInputFixture()
	bad.InvoiceNo = "INV-2"
	bad.Lines[0].ItemID = 3 // inactive item
	_, err = svc.Replace(ctx, created.ID, bad)
	if !core.IsReferenceNotFound(err) {
		t.Fatalf("err = %v, want REFERENCE_NOT_FOUND", err)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.InvoiceNo != "INV-1" || len(got.Lines) != 1 || !got.TotalInclAmount.Equal(dec("32.10")) {
		t.Errorf("Order mutated by failed replace: %+v", got)
	}
}

func TestOrderService_SoftDelete(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewOrderService(pool)
	ctx := context.Background()

	created, err := svc.Create(ctx, orderInputFixture())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.SoftDelete(ctx, created.ID); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}

	// Inactive orders drop out of List but remain fetchable by id.
	orders, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("List should exclude soft-deleted orders, got %d", len(orders))
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get after delete failed: %v", err)
	}
	if got.IsActive {
		t.Errorf("Order should be inactive after soft delete")
	}

	// Repeat delete is a no-op success.
	if err := svc.SoftDelete(ctx, created.ID); err != nil {
		t.Errorf("Repeat SoftDelete failed: %v", err)
	}

	// The invoice number is freed for a new active order.
	if _, err := svc.Create(ctx, orderInputFixture()); err != nil {
		t.Errorf("Reusing invoice number after soft delete failed: %v", err)
	}
}

func TestOrderService_SoftDeleteNotFound(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewOrderService(pool)
	err := svc.SoftDelete(context.Background(), 9999)
	if !core.IsNotFound(err) {
		t.Fatalf("err = %v, want NOT_FOUND", err)
	}
}

func TestOrderService_ListOrdering(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewOrderService(pool)
	ctx := context.Background()

	first := orderInputFixture()
	second := orderInputFixture()
	second.InvoiceNo = "INV-2"

	a, err := svc.Create(ctx, first)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	b, err := svc.Create(ctx, second)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	orders, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("Expected 2 orders, got %d", len(orders))
	}
	if orders[0].ID != b.ID || orders[1].ID != a.ID {
		t.Errorf("List order = [%d, %d], want newest first [%d, %d]",
			orders[0].ID, orders[1].ID, b.ID, a.ID)
	}
	if len(orders[0].Lines) != 1 {
		t.Errorf("List should hydrate lines, got %d", len(orders[0].Lines))
	}
}

func TestOrderService_SnapshotsSurviveCatalogEdits(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	orders := core.NewOrderService(pool)
	clients := core.NewClientService(pool)
	items := core.NewItemService(pool)

	created, err := orders.Create(ctx, orderInputFixture())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err = clients.Update(ctx, 1, core.ClientInput{CustomerName: "Acme Renamed", Address1: "New Rd"})
	if err != nil {
		t.Fatalf("Client update failed: %v", err)
	}
	_, err = items.Update(ctx, 1, core.ItemInput{Code: "WID-100", Description: "Widget, revised", UnitPrice: dec("99")})
	if err != nil {
		t.Fatalf("Item update failed: %v", err)
	}

	got, err := orders.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.CustomerName != "Acme Traders" {
		t.Errorf("Client snapshot changed: %q", got.CustomerName)
	}
	if !got.Lines[0].UnitPrice.Equal(dec("10")) || got.Lines[0].Description != "Widget, standard" {
		t.Errorf("Item snapshot changed: %+v", got.Lines[0])
	}
	if !got.TotalInclAmount.Equal(dec("32.10")) {
		t.Errorf("Totals recomputed after catalog edit: %s", got.TotalInclAmount)
	}
}
