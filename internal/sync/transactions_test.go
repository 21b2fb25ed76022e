package sync

import (
	"context"
	"testing"
	"time"

	"github.com/davebaumann/whoptix-saas-sub000/internal/skuvault"
)

func TestTransactionKeyDeterministic(t *testing.T) {
	date := time.Date(2026, 8, 25, 14, 30, 45, 123456789, time.UTC)

	k1 := transactionKey("WIDGET-001", date, "bob@acme.com", "Pick", -3)
	k2 := transactionKey("WIDGET-001", date, "bob@acme.com", "Pick", -3)
	if k1 != k2 {
		t.Error("Key should be deterministic")
	}

	// Sub-second precision must not change the key
	k3 := transactionKey("WIDGET-001", date.Truncate(time.Second), "bob@acme.com", "Pick", -3)
	if k1 != k3 {
		t.Error("Key should truncate timestamps to the second")
	}

	// Empty context normalizes to "unknown"
	if transactionKey("A", date, "u", "", 1) != transactionKey("A", date, "u", "unknown", 1) {
		t.Error("Empty context should hash as \"unknown\"")
	}

	if transactionKey("WIDGET-001", date, "bob@acme.com", "Pick", -4) == k1 {
		t.Error("Different quantity must change the key")
	}
}

func TestDeriveDisplayName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"bob.smith@acme.com", "Bob Smith"},
		{"jane_doe@acme.com", "Jane Doe"},
		{"carol@acme.com", "Carol"},
		{"dave.jones", "Dave Jones"},
		{"ALICE", "Alice"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := deriveDisplayName(tt.in); got != tt.want {
			t.Errorf("deriveDisplayName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSyncTransactionsSkipsDuplicates(t *testing.T) {
	svc, st, up, id := newTestEnv(t)
	ctx := context.Background()

	date := time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC)
	up.transactions = []skuvault.Transaction{
		{Sku: "WIDGET-001", TransactionType: "Pick", User: "bob.smith@acme.com", Quantity: -3, QuantityBefore: 10, QuantityAfter: 7, TransactionDate: date},
	}

	if err := svc.SyncTransactions(ctx, id, nil); err != nil {
		t.Fatalf("First sync failed: %v", err)
	}
	if err := svc.SyncTransactions(ctx, id, nil); err != nil {
		t.Fatalf("Second sync failed: %v", err)
	}

	transactions := st.Transactions()
	if len(transactions) != 1 {
		t.Fatalf("Duplicate transaction must be skipped, got %d rows", len(transactions))
	}

	tx := transactions[0]
	if tx.DisplayName != "Bob Smith" {
		t.Errorf("DisplayName = %q, want %q", tx.DisplayName, "Bob Smith")
	}
	if tx.Context != "unknown" {
		t.Errorf("Empty context should be stored as %q, got %q", "unknown", tx.Context)
	}
	if tx.QuantityBefore != 10 || tx.QuantityAfter != 7 {
		t.Errorf("Quantity snapshots not kept: %+v", tx)
	}
}

func TestSyncTransactionsUnlikeRecordsBothInsert(t *testing.T) {
	svc, st, up, id := newTestEnv(t)
	ctx := context.Background()

	date := time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC)
	up.transactions = []skuvault.Transaction{
		{Sku: "WIDGET-001", TransactionType: "Pick", User: "bob", Quantity: -3, TransactionDate: date},
		{Sku: "WIDGET-001", TransactionType: "Pick", User: "bob", Quantity: -4, TransactionDate: date},
	}

	if err := svc.SyncTransactions(ctx, id, nil); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if got := len(st.Transactions()); got != 2 {
		t.Errorf("Records differing in quantity must both insert, got %d", got)
	}
}
