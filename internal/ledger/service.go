// Package ledger runs the read-modify-write cycle behind every user action.
//
// Service holds no copy of the collection between calls: each operation
// loads the stored collection, works on it and, when mutating, saves it back.
package ledger

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/famwallet/famwallet/internal/activitylog"
	"github.com/famwallet/famwallet/internal/classify"
	"github.com/famwallet/famwallet/internal/export"
	"github.com/famwallet/famwallet/internal/id"
	"github.com/famwallet/famwallet/internal/model"
	"github.com/famwallet/famwallet/internal/query"
	"github.com/famwallet/famwallet/internal/stats"
	"github.com/famwallet/famwallet/internal/store"
)

var (
	// ErrInvalidAmount rejects a submission whose amount is not a positive number.
	ErrInvalidAmount = errors.New("enter a valid amount")
	// ErrNotFound is returned by Get when no transaction matches.
	ErrNotFound = errors.New("transaction not found")
)

// Recorder receives an audit entry for every mutating operation.
type Recorder interface {
	Append(entries ...activitylog.Entry) error
}

// Service provides the ledger operations the CLI binds to.
type Service struct {
	store    store.Store
	log      zerolog.Logger
	activity Recorder
	now      func() time.Time
	newID    func() string
}

// Option configures a Service.
type Option func(*Service)

// WithActivityLog records mutating operations to r.
func WithActivityLog(r Recorder) Option {
	return func(s *Service) { s.activity = r }
}

// WithClock overrides the time source used for default dates and log stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDFunc overrides transaction ID generation.
func WithIDFunc(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// NewService creates a ledger Service over st.
func NewService(st store.Store, logger zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		store: st,
		log:   logger,
		now:   time.Now,
		newID: id.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddParams holds the submitted form values. Zero values take defaults:
// credit, category other, mode cash, today's date.
type AddParams struct {
	Type     model.TxnType
	Amount   decimal.Decimal
	Merchant string
	Category model.Category
	Date     time.Time
	Mode     model.Mode
}

// ParseAmount parses user input into a positive amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || !d.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}

// Add validates params, appends a new transaction and saves the collection.
// Nothing is written when validation fails.
func (s *Service) Add(params AddParams) (model.Transaction, error) {
	if !params.Amount.IsPositive() {
		return model.Transaction{}, ErrInvalidAmount
	}

	txn, err := s.newTransaction(params)
	if err != nil {
		return model.Transaction{}, err
	}

	txns, err := s.store.Load()
	if err != nil {
		return model.Transaction{}, fmt.Errorf("loading transactions: %w", err)
	}

	txns = append(txns, txn)
	if err := s.store.Save(txns); err != nil {
		return model.Transaction{}, fmt.Errorf("saving transactions: %w", err)
	}

	s.log.Debug().Str("id", txn.ID).Str("type", string(txn.Type)).Str("amount", txn.Amount.String()).Msg("transaction added")
	s.record(activitylog.ActionAdd, txn.ID, fmt.Sprintf("%s %s %s", txn.Type, txn.Amount, txn.Merchant))
	return txn, nil
}

func (s *Service) newTransaction(params AddParams) (model.Transaction, error) {
	typ, err := parseOrDefault(params.Type, model.TypeCredit, model.ParseTxnType)
	if err != nil {
		return model.Transaction{}, err
	}
	category, err := parseOrDefault(params.Category, model.CategoryOther, model.ParseCategory)
	if err != nil {
		return model.Transaction{}, err
	}
	mode, err := parseOrDefault(params.Mode, model.ModeCash, model.ParseMode)
	if err != nil {
		return model.Transaction{}, err
	}

	date := params.Date
	if date.IsZero() {
		date = model.Today(s.now())
	} else {
		date = model.Today(date)
	}

	return model.Transaction{
		ID:       s.newID(),
		Type:     typ,
		Amount:   params.Amount,
		Merchant: strings.TrimSpace(params.Merchant),
		Category: category,
		Date:     date,
		Mode:     mode,
	}, nil
}

// Delete removes the transaction whose ID equals or uniquely starts with
// input. A missing transaction is not an error: it returns false.
func (s *Service) Delete(input string) (model.Transaction, bool, error) {
	txns, err := s.store.Load()
	if err != nil {
		return model.Transaction{}, false, fmt.Errorf("loading transactions: %w", err)
	}

	target, err := id.Resolve(input, ids(txns))
	if err != nil {
		return model.Transaction{}, false, err
	}
	if target == "" {
		s.log.Debug().Str("id", input).Msg("delete: no matching transaction")
		return model.Transaction{}, false, nil
	}

	var removed model.Transaction
	kept := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		if t.ID == target {
			removed = t
			continue
		}
		kept = append(kept, t)
	}

	if err := s.store.Save(kept); err != nil {
		return model.Transaction{}, false, fmt.Errorf("saving transactions: %w", err)
	}

	s.log.Debug().Str("id", target).Msg("transaction deleted")
	s.record(activitylog.ActionDelete, target, fmt.Sprintf("%s %s %s", removed.Type, removed.Amount, removed.Merchant))
	return removed, true, nil
}

// Reset removes the whole collection. Confirmation is the caller's job.
func (s *Service) Reset() error {
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("clearing transactions: %w", err)
	}
	s.log.Debug().Msg("transactions reset")
	s.record(activitylog.ActionReset, "", "all transactions removed")
	return nil
}

// View is one rendering of the ledger.
type View struct {
	Rows     []model.Classified // filtered and sorted
	Totals   stats.Totals       // over the full collection
	Count    int                // size of the full collection
	Degraded bool               // stored data was malformed and treated as empty
}

// View loads the collection, classifies it in full, applies opts and
// aggregates the full collection. Malformed stored data is reported as a
// warning and rendered as an empty ledger.
func (s *Service) View(opts query.Options) (View, error) {
	txns, degraded, err := s.loadForRead()
	if err != nil {
		return View{}, err
	}

	rows := classify.Classify(txns)
	return View{
		Rows:     query.Apply(rows, opts),
		Totals:   stats.Aggregate(txns),
		Count:    len(txns),
		Degraded: degraded,
	}, nil
}

// Breakdown returns per-category sums over the full collection.
func (s *Service) Breakdown() ([]stats.CategoryTotal, error) {
	txns, _, err := s.loadForRead()
	if err != nil {
		return nil, err
	}
	return stats.ByCategory(txns), nil
}

// Get returns one classified transaction by ID or unique prefix, together
// with the rules that flagged it.
func (s *Service) Get(input string) (model.Classified, []classify.Reason, error) {
	txns, err := s.store.Load()
	if err != nil {
		return model.Classified{}, nil, fmt.Errorf("loading transactions: %w", err)
	}

	target, err := id.Resolve(input, ids(txns))
	if err != nil {
		return model.Classified{}, nil, err
	}
	for _, c := range classify.Classify(txns) {
		if c.ID == target {
			return c, classify.Reasons(c.Transaction, txns), nil
		}
	}
	return model.Classified{}, nil, fmt.Errorf("%w: %q", ErrNotFound, input)
}

// Export writes the full stored collection, not a filtered view.
func (s *Service) Export(w io.Writer, format export.Format) error {
	txns, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("loading transactions: %w", err)
	}
	if err := export.Write(w, txns, format); err != nil {
		return err
	}
	s.record(activitylog.ActionExport, "", fmt.Sprintf("%d transactions as %s", len(txns), format))
	return nil
}

// ImportResult counts what Import did.
type ImportResult struct {
	Added   int
	Skipped int // already stored under the same ID
}

// Import appends incoming transactions whose IDs are not already stored.
// Incoming duplicates of one ID keep the first occurrence.
func (s *Service) Import(incoming []model.Transaction) (ImportResult, error) {
	txns, err := s.store.Load()
	if err != nil {
		return ImportResult{}, fmt.Errorf("loading transactions: %w", err)
	}

	seen := make(map[string]bool, len(txns)+len(incoming))
	for _, t := range txns {
		seen[t.ID] = true
	}

	var res ImportResult
	for _, t := range incoming {
		if seen[t.ID] {
			res.Skipped++
			continue
		}
		seen[t.ID] = true
		txns = append(txns, t)
		res.Added++
	}

	if res.Added == 0 {
		return res, nil
	}
	if err := s.store.Save(txns); err != nil {
		return ImportResult{}, fmt.Errorf("saving transactions: %w", err)
	}

	s.log.Debug().Int("added", res.Added).Int("skipped", res.Skipped).Msg("transactions imported")
	s.record(activitylog.ActionImport, "", fmt.Sprintf("%d added, %d skipped", res.Added, res.Skipped))
	return res, nil
}

func (s *Service) loadForRead() ([]model.Transaction, bool, error) {
	txns, err := s.store.Load()
	if errors.Is(err, store.ErrMalformed) {
		s.log.Warn().Err(err).Msg("stored transactions are malformed; showing an empty ledger (run reset to start over)")
		return nil, true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading transactions: %w", err)
	}
	return txns, false, nil
}

func (s *Service) record(action activitylog.Action, txnID, details string) {
	if s.activity == nil {
		return
	}
	err := s.activity.Append(activitylog.Entry{
		Timestamp: s.now().UTC(),
		Action:    action,
		TxnID:     txnID,
		Details:   details,
	})
	if err != nil {
		s.log.Warn().Err(err).Str("action", string(action)).Msg("failed to write activity log")
	}
}

// parseOrDefault returns def for an empty value and the canonical enum
// otherwise.
func parseOrDefault[T ~string](v, def T, parse func(string) (T, error)) (T, error) {
	if v == "" {
		return def, nil
	}
	return parse(string(v))
}

func ids(txns []model.Transaction) []string {
	out := make([]string, len(txns))
	for i, t := range txns {
		out[i] = t.ID
	}
	return out
}
