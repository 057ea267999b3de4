package pipeline

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/shraddhagadale/SpendSense/internal/dates"
	"github.com/shraddhagadale/SpendSense/internal/dedupe"
	"github.com/shraddhagadale/SpendSense/internal/logger"
	"github.com/shraddhagadale/SpendSense/internal/merchant"
	"github.com/shraddhagadale/SpendSense/internal/statement"
)

// ExtractTextStep pulls the raw text out of the statement PDF.
type ExtractTextStep struct {
	Extractor TextExtractor
}

func (s *ExtractTextStep) Execute(ctx context.Context, state *State) error {
	text, err := s.Extractor.Extract(ctx, state.PDFBytes)
	if err != nil {
		return fmt.Errorf("extract text: %w", err)
	}
	state.RawText = text
	return nil
}

// SectionStep isolates the charges section of the statement text.
type SectionStep struct{}

func (s *SectionStep) Execute(ctx context.Context, state *State) error {
	state.SectionLines = statement.ChargesSection(state.RawText)
	if len(state.SectionLines) == 0 {
		log := logger.FromContext(ctx)
		log.Warn().Msg("no charges section found in document")
	}
	return nil
}

// AssembleStep joins wrapped lines into one-line transaction records.
type AssembleStep struct{}

func (s *AssembleStep) Execute(ctx context.Context, state *State) error {
	state.Records = statement.Assemble(state.SectionLines)
	return nil
}

// ParseStep extracts date, description and amount from each record.
// Records that do not match the transaction shape are dropped; that is how
// footers and summary lines are filtered out.
type ParseStep struct{}

func (s *ParseStep) Execute(ctx context.Context, state *State) error {
	state.Parsed = statement.Parse(state.Records)
	state.Result.Parsed = len(state.Parsed)
	return nil
}

// normalize converts one parsed record into a storable transaction: the
// date is canonicalized, the amount loses its sign into the credit flag,
// and the dedupe hash is computed over the raw fields.
func normalize(p statement.ParsedTransaction, statementID *uuid.UUID) (*Transaction, error) {
	amount, err := strconv.ParseFloat(p.Amount, 64)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", p.Amount, err)
	}

	postedDate, err := time.Parse("2006-01-02", dates.Normalize(p.Date))
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", p.Date, err)
	}

	return &Transaction{
		PostedDate:  postedDate,
		Amount:      math.Abs(amount),
		Credit:      amount < 0,
		Description: p.Description,
		Merchant:    merchant.Clean(p.Description),
		StatementID: statementID,
		DedupeHash:  dedupe.Hash(p.Date, amount, p.Description),
	}, nil
}

// NormalizeStep converts parsed records into storable transactions.
type NormalizeStep struct{}

func (s *NormalizeStep) Execute(ctx context.Context, state *State) error {
	log := logger.FromContext(ctx)

	txns := make([]*Transaction, 0, len(state.Parsed))
	for _, p := range state.Parsed {
		tx, err := normalize(p, state.StatementID)
		if err != nil {
			log.Warn().Err(err).Str("record", p.Date+" "+p.Description).Msg("skipping unparseable transaction")
			continue
		}
		txns = append(txns, tx)
	}
	state.Transactions = txns
	return nil
}

// CategorizeStep asks the categorizer for a category per transaction. A
// categorizer failure never aborts the run: the transaction keeps an empty
// category and can be filled in later.
type CategorizeStep struct {
	Categorizer Categorizer
}

func (s *CategorizeStep) Execute(ctx context.Context, state *State) error {
	if s.Categorizer == nil {
		return nil
	}
	log := logger.FromContext(ctx)

	for _, tx := range state.Transactions {
		category, err := s.Categorizer.Categorize(ctx, tx.Description, tx.Amount)
		if err != nil {
			log.Warn().Err(err).Str("description", tx.Description).Msg("categorization failed, leaving empty")
			continue
		}
		tx.Category = category
		state.Result.Categorized++
	}
	return nil
}

// StoreStep persists the transactions, counting inserts and duplicates.
type StoreStep struct {
	Store TransactionStore
}

func (s *StoreStep) Execute(ctx context.Context, state *State) error {
	for _, tx := range state.Transactions {
		inserted, err := s.Store.InsertIfNew(ctx, tx)
		if err != nil {
			return fmt.Errorf("store transaction: %w", err)
		}
		if inserted {
			state.Result.Inserted++
		} else {
			state.Result.Duplicates++
		}
	}
	return nil
}
