// Package ledger persists the bookkeeping collections as CSV files in
// a git-managed directory and applies the intended mutations computed
// by the pure engine packages. It is the storage collaborator: the
// importer, rule engine, and matcher never touch files themselves.
package ledger

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/cuadra-dev/cuadra/internal/model"
	"github.com/cuadra-dev/cuadra/internal/recon"
)

// Collection file locations inside a ledger directory.
const (
	accountsPath = "accounts/accounts.csv"
	txPath       = "ledger/transactions.csv"
	invoicesPath = "ledger/invoices.csv"
	groupsPath   = "ledger/groups.csv"
	closingsPath = "ledger/closings.csv"

	attachmentsDir = "attachments"
)

// Store holds an in-memory snapshot of every collection, loaded from
// and saved to one ledger directory. Mutations happen in memory and
// land on disk only on Save, so a failed multi-record apply never
// leaves a half-written ledger.
type Store struct {
	dir      string
	accounts []model.Account
	txs      []model.Transaction
	invoices []model.Invoice
	groups   []model.ReconciliationGroup
	closings []model.CashClosing
}

// Open loads all collections from dir. Missing files are empty
// collections, so Open works on a freshly initialized ledger.
func Open(dir string) (*Store, error) {
	s := &Store{dir: dir}

	if err := readInto(filepath.Join(dir, accountsPath), ReadAccounts, &s.accounts); err != nil {
		return nil, err
	}
	if err := readInto(filepath.Join(dir, txPath), ReadTransactions, &s.txs); err != nil {
		return nil, err
	}
	if err := readInto(filepath.Join(dir, invoicesPath), ReadInvoices, &s.invoices); err != nil {
		return nil, err
	}
	if err := readInto(filepath.Join(dir, groupsPath), ReadGroups, &s.groups); err != nil {
		return nil, err
	}
	if err := readInto(filepath.Join(dir, closingsPath), ReadClosings, &s.closings); err != nil {
		return nil, err
	}
	return s, nil
}

func readInto[T any](path string, read func(io.Reader) ([]T, error), dst *[]T) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	records, err := read(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	*dst = records
	return nil
}

// Save writes every collection back to disk.
func (s *Store) Save() error {
	writes := []struct {
		path  string
		write func(io.Writer) error
	}{
		{accountsPath, func(w io.Writer) error { return WriteAccounts(w, s.accounts) }},
		{txPath, func(w io.Writer) error { return WriteTransactions(w, s.txs) }},
		{invoicesPath, func(w io.Writer) error { return WriteInvoices(w, s.invoices) }},
		{groupsPath, func(w io.Writer) error { return WriteGroups(w, s.groups) }},
		{closingsPath, func(w io.Writer) error { return WriteClosings(w, s.closings) }},
	}

	for _, item := range writes {
		path := filepath.Join(s.dir, item.path)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating dir for %s: %w", item.path, err)
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", item.path, err)
		}
		if err := item.write(f); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", item.path, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing %s: %w", item.path, err)
		}
	}
	return nil
}

// Dir returns the ledger directory the store was opened from.
func (s *Store) Dir() string { return s.dir }

// Snapshot accessors. Slices are copied so callers hold a stable view.

func (s *Store) Accounts() []model.Account {
	return append([]model.Account(nil), s.accounts...)
}

func (s *Store) Transactions() []model.Transaction {
	return append([]model.Transaction(nil), s.txs...)
}

func (s *Store) Invoices() []model.Invoice {
	return append([]model.Invoice(nil), s.invoices...)
}

func (s *Store) Groups() []model.ReconciliationGroup {
	return append([]model.ReconciliationGroup(nil), s.groups...)
}

func (s *Store) Closings() []model.CashClosing {
	return append([]model.CashClosing(nil), s.closings...)
}

// Account returns an account by id.
func (s *Store) Account(accID string) (model.Account, bool) {
	for _, a := range s.accounts {
		if a.ID == accID {
			return a, true
		}
	}
	return model.Account{}, false
}

// Transaction returns a transaction by id.
func (s *Store) Transaction(txID string) (model.Transaction, bool) {
	for _, tx := range s.txs {
		if tx.ID == txID {
			return tx, true
		}
	}
	return model.Transaction{}, false
}

// Invoice returns an invoice by id.
func (s *Store) Invoice(invID string) (model.Invoice, bool) {
	for _, inv := range s.invoices {
		if inv.ID == invID {
			return inv, true
		}
	}
	return model.Invoice{}, false
}

// Group returns a reconciliation group by id.
func (s *Store) Group(groupID string) (model.ReconciliationGroup, bool) {
	for _, g := range s.groups {
		if g.ID == groupID {
			return g, true
		}
	}
	return model.ReconciliationGroup{}, false
}

// Fingerprints returns the dedupe keys already stored for an account.
func (s *Store) Fingerprints(accID string) map[string]bool {
	set := make(map[string]bool)
	for _, tx := range s.txs {
		if tx.AccountID == accID && tx.Fingerprint != "" {
			set[tx.Fingerprint] = true
		}
	}
	return set
}

// Balance returns opening balance plus the sum of all bank movements
// on the account.
func (s *Store) Balance(accID string) (decimal.Decimal, error) {
	acc, ok := s.Account(accID)
	if !ok {
		return decimal.Zero, fmt.Errorf("account %s not found", accID)
	}
	total := acc.OpeningBalance
	for _, tx := range s.txs {
		if tx.Kind == model.KindBank && tx.AccountID == accID {
			total = total.Add(tx.Amount)
		}
	}
	return total, nil
}

// AddAccount appends a new account.
func (s *Store) AddAccount(a model.Account) {
	s.accounts = append(s.accounts, a)
}

// AddTransactions appends imported or manual transactions, enforcing
// fingerprint uniqueness per account at commit time (imports that raced
// another session are dropped here, not just at parse time).
func (s *Store) AddTransactions(txs []model.Transaction) int {
	added := 0
	seen := make(map[string]bool)
	for _, tx := range s.txs {
		if tx.Fingerprint != "" {
			seen[tx.AccountID+"\x00"+tx.Fingerprint] = true
		}
	}
	for _, tx := range txs {
		if tx.Fingerprint != "" {
			key := tx.AccountID + "\x00" + tx.Fingerprint
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		s.txs = append(s.txs, tx)
		added++
	}
	return added
}

// AddInvoice appends a new invoice.
func (s *Store) AddInvoice(inv model.Invoice) {
	s.invoices = append(s.invoices, inv)
}

// AddClosing appends a cash closing.
func (s *Store) AddClosing(c model.CashClosing) {
	s.closings = append(s.closings, c)
}

// UpdateTransactionLabels sets category and party on one transaction.
func (s *Store) UpdateTransactionLabels(txID, category, party string) error {
	for i := range s.txs {
		if s.txs[i].ID == txID {
			s.txs[i].Category = category
			s.txs[i].Party = party
			return nil
		}
	}
	return fmt.Errorf("transaction %s not found", txID)
}

// SetInvoicePayment updates an invoice's payment status. Reconciled
// invoices are locked; the group must be deleted first.
func (s *Store) SetInvoicePayment(invID string, status model.PaymentStatus) error {
	for i := range s.invoices {
		if s.invoices[i].ID != invID {
			continue
		}
		if s.invoices[i].Recon == model.ReconReconciled {
			return fmt.Errorf("invoice %s: %w", invID, model.ErrStateConflict)
		}
		s.invoices[i].Payment = status
		return nil
	}
	return fmt.Errorf("invoice %s not found", invID)
}

// ApplyGroupPlan applies a group creation or teardown atomically:
// every referenced record is located before anything mutates.
func (s *Store) ApplyGroupPlan(plan recon.GroupPlan) error {
	txIdx := make(map[string]int, len(plan.TxUpdates))
	for _, u := range plan.TxUpdates {
		i, err := s.txIndex(u.ID)
		if err != nil {
			return err
		}
		txIdx[u.ID] = i
	}
	invIdx := make(map[string]int, len(plan.InvoiceUpdates))
	for _, u := range plan.InvoiceUpdates {
		i, err := s.invoiceIndex(u.ID)
		if err != nil {
			return err
		}
		invIdx[u.ID] = i
	}
	if plan.Teardown {
		if _, ok := s.Group(plan.Group.ID); !ok {
			return fmt.Errorf("group %s not found", plan.Group.ID)
		}
	}

	for _, u := range plan.TxUpdates {
		s.txs[txIdx[u.ID]].Recon = u.Recon
	}
	for _, u := range plan.InvoiceUpdates {
		s.invoices[invIdx[u.ID]].Recon = u.Recon
		s.invoices[invIdx[u.ID]].Payment = u.Payment
	}

	if plan.Teardown {
		for i, g := range s.groups {
			if g.ID == plan.Group.ID {
				s.groups = append(s.groups[:i], s.groups[i+1:]...)
				break
			}
		}
	} else {
		s.groups = append(s.groups, plan.Group)
	}
	return nil
}

// DeleteTransaction removes a transaction unless it is reconciled or a
// member of an active group.
func (s *Store) DeleteTransaction(txID string) error {
	i, err := s.txIndex(txID)
	if err != nil {
		return err
	}
	if s.txs[i].Recon == model.ReconReconciled || s.groupCoveringTx(txID) != "" {
		return fmt.Errorf("transaction %s: %w", txID, model.ErrStateConflict)
	}
	s.txs = append(s.txs[:i], s.txs[i+1:]...)
	return nil
}

// DeleteInvoice removes an invoice unless it is reconciled or a member
// of an active group.
func (s *Store) DeleteInvoice(invID string) error {
	i, err := s.invoiceIndex(invID)
	if err != nil {
		return err
	}
	if s.invoices[i].Recon == model.ReconReconciled || s.groupCoveringInvoice(invID) != "" {
		return fmt.Errorf("invoice %s: %w", invID, model.ErrStateConflict)
	}
	s.invoices = append(s.invoices[:i], s.invoices[i+1:]...)
	return nil
}

// DeleteAccount removes an account that has no transactions.
func (s *Store) DeleteAccount(accID string) error {
	for _, tx := range s.txs {
		if tx.AccountID == accID {
			return fmt.Errorf("account %s still has transactions", accID)
		}
	}
	for i, a := range s.accounts {
		if a.ID == accID {
			s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("account %s not found", accID)
}

// StoreAttachment copies an invoice document into attachments/ and
// returns the relative reference to record on the invoice.
func (s *Store) StoreAttachment(src, invID string) (string, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("reading attachment: %w", err)
	}

	ref := filepath.Join(attachmentsDir, invID+filepath.Ext(src))
	dst := filepath.Join(s.dir, ref)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("creating attachments dir: %w", err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("writing attachment: %w", err)
	}
	return ref, nil
}

func (s *Store) txIndex(txID string) (int, error) {
	for i := range s.txs {
		if s.txs[i].ID == txID {
			return i, nil
		}
	}
	return 0, fmt.Errorf("transaction %s not found", txID)
}

func (s *Store) invoiceIndex(invID string) (int, error) {
	for i := range s.invoices {
		if s.invoices[i].ID == invID {
			return i, nil
		}
	}
	return 0, fmt.Errorf("invoice %s not found", invID)
}

func (s *Store) groupCoveringTx(txID string) string {
	for _, g := range s.groups {
		if g.Covers(txID) {
			return g.ID
		}
	}
	return ""
}

func (s *Store) groupCoveringInvoice(invID string) string {
	for _, g := range s.groups {
		if g.CoversInvoice(invID) {
			return g.ID
		}
	}
	return ""
}
