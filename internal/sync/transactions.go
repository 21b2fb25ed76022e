package sync

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode"

	"github.com/davebaumann/whoptix-saas-sub000/internal/models"
)

// transactionKey builds the deterministic idempotency key for one upstream
// transaction record: SKU, timestamp truncated to the second, user,
// context-or-"unknown", and the quantity delta, hashed into one indexed
// column.
func transactionKey(sku string, date time.Time, user, txContext string, quantity int) string {
	if txContext == "" {
		txContext = "unknown"
	}
	raw := fmt.Sprintf("%s|%s|%s|%s|%d", sku, date.UTC().Format("2006-01-02T15:04:05"), user, txContext, quantity)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// deriveDisplayName turns a raw user/email string into a presentable name:
// the part before any "@", split on "." and "_", each segment title-cased.
func deriveDisplayName(user string) string {
	name := user
	if i := strings.Index(name, "@"); i >= 0 {
		name = name[:i]
	}
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '.' || r == '_'
	})
	if len(parts) == 0 {
		return user
	}
	for i, p := range parts {
		runes := []rune(strings.ToLower(p))
		runes[0] = unicode.ToUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

// SyncTransactions pulls transaction history for the incremental window and
// appends rows whose idempotency key is not yet present. Same window policy
// as movements; records keep before/after quantity snapshots.
func (s *Service) SyncTransactions(ctx context.Context, customerID uint, since *time.Time) error {
	customer, creds, ok, err := s.resolve(ctx, customerID, "transactions")
	if err != nil || !ok {
		return err
	}

	from, to := fetchWindow(since, customer.LastSyncedAt, s.now())

	upstream, err := s.client.GetTransactions(ctx, creds, from, to)
	if err != nil {
		return fmt.Errorf("fetch transactions for customer %d: %w", customerID, err)
	}
	if len(upstream) == 0 {
		return nil
	}

	now := s.now().UTC()
	candidates := make([]models.Transaction, 0, len(upstream))
	keys := make([]string, 0, len(upstream))
	seen := make(map[string]bool, len(upstream))

	for _, up := range upstream {
		if up.Sku == "" {
			continue
		}
		key := transactionKey(up.Sku, up.TransactionDate, up.User, up.Context, up.Quantity)
		if seen[key] {
			continue
		}
		seen[key] = true

		txContext := up.Context
		if txContext == "" {
			txContext = "unknown"
		}

		raw, _ := json.Marshal(up)
		candidates = append(candidates, models.Transaction{
			CustomerID:      customerID,
			SKU:             up.Sku,
			TransactionType: up.TransactionType,
			Context:         txContext,
			User:            up.User,
			DisplayName:     deriveDisplayName(up.User),
			QuantityBefore:  up.QuantityBefore,
			QuantityAfter:   up.QuantityAfter,
			QuantityChange:  up.Quantity,
			TransactionDate: up.TransactionDate.UTC(),
			IdempotencyKey:  key,
			RawData:         raw,
			CreatedAt:       now,
		})
		keys = append(keys, key)
	}

	existing, err := s.store.ExistingTransactionKeys(ctx, customerID, keys)
	if err != nil {
		return fmt.Errorf("check transaction keys for customer %d: %w", customerID, err)
	}

	fresh := candidates[:0]
	for _, tx := range candidates {
		if existing[tx.IdempotencyKey] {
			continue
		}
		fresh = append(fresh, tx)
	}

	if err := s.store.InsertTransactions(ctx, fresh); err != nil {
		return fmt.Errorf("insert transactions for customer %d: %w", customerID, err)
	}

	log.Printf("🧾 Sync: customer %d transactions window %s..%s (%d new, %d duplicate)",
		customerID, from.Format(time.RFC3339), to.Format(time.RFC3339),
		len(fresh), len(candidates)-len(fresh))
	return nil
}
