// Package pipeline orchestrates statement ingestion: raw PDF text is
// filtered to the charges section, assembled into one-line records, parsed
// into transactions, normalized, categorized, and stored.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shraddhagadale/SpendSense/internal/logger"
	"github.com/shraddhagadale/SpendSense/internal/statement"
)

// TextExtractor produces the full raw text of a statement document.
type TextExtractor interface {
	Extract(ctx context.Context, pdfData []byte) (string, error)
}

// Categorizer assigns a spending category to one transaction.
type Categorizer interface {
	Categorize(ctx context.Context, description string, amount float64) (string, error)
}

// TransactionStore persists normalized transactions. InsertIfNew reports
// whether the row was inserted; false means a duplicate already existed.
type TransactionStore interface {
	InsertIfNew(ctx context.Context, tx *Transaction) (bool, error)
}

// Transaction is one fully normalized statement transaction. Amount is
// always positive; Credit records whether the source amount was negative
// (a payment or refund).
type Transaction struct {
	PostedDate  time.Time
	Amount      float64
	Credit      bool
	Description string
	Merchant    string
	Category    string
	StatementID *uuid.UUID
	DedupeHash  string
}

// Result summarizes one ingestion run.
type Result struct {
	Parsed      int
	Inserted    int
	Duplicates  int
	Categorized int
}

// State holds the shared state across pipeline steps.
type State struct {
	PDFBytes     []byte
	StatementID  *uuid.UUID
	RawText      string
	SectionLines []string
	Records      []string
	Parsed       []statement.ParsedTransaction
	Transactions []*Transaction
	Result       Result
}

// Step is a single stage of the ingestion pipeline.
type Step interface {
	Execute(ctx context.Context, state *State) error
}

// Pipeline executes a sequence of steps in order.
type Pipeline struct {
	steps []Step
}

// New creates a pipeline with the given steps.
func New(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Execute runs all steps sequentially. The first failing step aborts the
// run.
func (p *Pipeline) Execute(ctx context.Context, state *State) error {
	for i, step := range p.steps {
		if err := step.Execute(ctx, state); err != nil {
			return fmt.Errorf("pipeline step %d failed: %w", i+1, err)
		}
	}
	return nil
}

// NewStatementIngestion creates the standard pipeline for ingesting one
// statement document. categorizer may be nil; stored transactions are then
// left uncategorized.
func NewStatementIngestion(extractor TextExtractor, categorizer Categorizer, store TransactionStore) *Pipeline {
	return New(
		&ExtractTextStep{Extractor: extractor},
		&SectionStep{},
		&AssembleStep{},
		&ParseStep{},
		&NormalizeStep{},
		&CategorizeStep{Categorizer: categorizer},
		&StoreStep{Store: store},
	)
}

// IngestStatement runs the standard pipeline over one document's bytes and
// returns the run counters.
func IngestStatement(ctx context.Context, pdfData []byte, statementID *uuid.UUID, extractor TextExtractor, categorizer Categorizer, store TransactionStore) (Result, error) {
	state := &State{PDFBytes: pdfData, StatementID: statementID}
	if err := NewStatementIngestion(extractor, categorizer, store).Execute(ctx, state); err != nil {
		return state.Result, err
	}

	log := logger.FromContext(ctx)
	log.Info().
		Int("parsed", state.Result.Parsed).
		Int("inserted", state.Result.Inserted).
		Int("duplicates", state.Result.Duplicates).
		Int("categorized", state.Result.Categorized).
		Msg("statement ingested")
	return state.Result, nil
}
