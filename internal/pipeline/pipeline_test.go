package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shraddhagadale/SpendSense/internal/pipeline"
)

const statementText = `Statement of Account

New Charges Details
01/05/24 KROGER #123 INDIANAPOLIS IN $45.67
01/06/24 NETFLIX.COM 866-579-7172 CA
$15.49
01/07/24 PAYMENT RECEIVED THANK YOU -$120.00
Fees
01/08/24 LATE FEE $29.00
`

type mockExtractor struct {
	ExtractFunc func(ctx context.Context, pdfData []byte) (string, error)
}

func (m *mockExtractor) Extract(ctx context.Context, pdfData []byte) (string, error) {
	return m.ExtractFunc(ctx, pdfData)
}

type mockCategorizer struct {
	CategorizeFunc func(ctx context.Context, description string, amount float64) (string, error)
}

func (m *mockCategorizer) Categorize(ctx context.Context, description string, amount float64) (string, error) {
	return m.CategorizeFunc(ctx, description, amount)
}

type mockStore struct {
	InsertIfNewFunc func(ctx context.Context, tx *pipeline.Transaction) (bool, error)
	inserted        []*pipeline.Transaction
}

func (m *mockStore) InsertIfNew(ctx context.Context, tx *pipeline.Transaction) (bool, error) {
	if m.InsertIfNewFunc != nil {
		return m.InsertIfNewFunc(ctx, tx)
	}
	m.inserted = append(m.inserted, tx)
	return true, nil
}

func textExtractor(text string) *mockExtractor {
	return &mockExtractor{
		ExtractFunc: func(ctx context.Context, pdfData []byte) (string, error) {
			return text, nil
		},
	}
}

func TestIngestStatement(t *testing.T) {
	store := &mockStore{}
	categorizer := &mockCategorizer{
		CategorizeFunc: func(ctx context.Context, description string, amount float64) (string, error) {
			return "Grocery", nil
		},
	}

	result, err := pipeline.IngestStatement(
		context.Background(), []byte("pdf"), nil,
		textExtractor(statementText), categorizer, store,
	)
	require.NoError(t, err)

	// The LATE FEE line sits past the section terminator and must not be
	// ingested.
	assert.Equal(t, 3, result.Parsed)
	assert.Equal(t, 3, result.Inserted)
	assert.Equal(t, 0, result.Duplicates)
	assert.Equal(t, 3, result.Categorized)
	require.Len(t, store.inserted, 3)

	kroger := store.inserted[0]
	assert.Equal(t, "2024-01-05", kroger.PostedDate.Format("2006-01-02"))
	assert.Equal(t, 45.67, kroger.Amount)
	assert.False(t, kroger.Credit)
	assert.Equal(t, "KROGER #123 INDIANAPOLIS IN", kroger.Description)
	assert.Equal(t, "Kroger", kroger.Merchant)
	assert.Equal(t, "Grocery", kroger.Category)
	assert.Len(t, kroger.DedupeHash, 64)

	// Wrapped record: the amount on its own line belongs to the previous
	// transaction.
	netflix := store.inserted[1]
	assert.Equal(t, 15.49, netflix.Amount)
	assert.Equal(t, "Netflix.Com", netflix.Merchant)

	payment := store.inserted[2]
	assert.True(t, payment.Credit)
	assert.Equal(t, 120.00, payment.Amount)
}

func TestIngestStatementCategorizerFailureIsIsolated(t *testing.T) {
	store := &mockStore{}
	calls := 0
	categorizer := &mockCategorizer{
		CategorizeFunc: func(ctx context.Context, description string, amount float64) (string, error) {
			calls++
			if calls == 2 {
				return "", errors.New("model unavailable")
			}
			return "Shopping", nil
		},
	}

	result, err := pipeline.IngestStatement(
		context.Background(), []byte("pdf"), nil,
		textExtractor(statementText), categorizer, store,
	)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Inserted)
	assert.Equal(t, 2, result.Categorized)
	require.Len(t, store.inserted, 3)
	assert.Equal(t, "Shopping", store.inserted[0].Category)
	assert.Equal(t, "", store.inserted[1].Category)
	assert.Equal(t, "Shopping", store.inserted[2].Category)
}

func TestIngestStatementNilCategorizer(t *testing.T) {
	store := &mockStore{}

	result, err := pipeline.IngestStatement(
		context.Background(), []byte("pdf"), nil,
		textExtractor(statementText), nil, store,
	)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Categorized)
	for _, tx := range store.inserted {
		assert.Equal(t, "", tx.Category)
	}
}

func TestIngestStatementCountsDuplicates(t *testing.T) {
	seen := map[string]bool{}
	store := &mockStore{
		InsertIfNewFunc: func(ctx context.Context, tx *pipeline.Transaction) (bool, error) {
			if seen[tx.DedupeHash] {
				return false, nil
			}
			seen[tx.DedupeHash] = true
			return true, nil
		},
	}

	text := `New Charges Details
01/05/24 KROGER #123 INDIANAPOLIS IN $45.67
01/05/24 KROGER #123 INDIANAPOLIS IN $45.67
`
	result, err := pipeline.IngestStatement(
		context.Background(), []byte("pdf"), nil,
		textExtractor(text), nil, store,
	)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Parsed)
	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, 1, result.Duplicates)
}

func TestIngestStatementExtractorFailureAborts(t *testing.T) {
	store := &mockStore{}
	extractor := &mockExtractor{
		ExtractFunc: func(ctx context.Context, pdfData []byte) (string, error) {
			return "", errors.New("corrupt pdf")
		},
	}

	_, err := pipeline.IngestStatement(context.Background(), []byte("pdf"), nil, extractor, nil, store)
	require.Error(t, err)
	assert.Empty(t, store.inserted)
}

func TestIngestStatementStoreFailureAborts(t *testing.T) {
	store := &mockStore{
		InsertIfNewFunc: func(ctx context.Context, tx *pipeline.Transaction) (bool, error) {
			return false, errors.New("connection refused")
		},
	}

	_, err := pipeline.IngestStatement(
		context.Background(), []byte("pdf"), nil,
		textExtractor(statementText), nil, store,
	)
	require.Error(t, err)
}

func TestIngestStatementNoChargesSection(t *testing.T) {
	store := &mockStore{}

	result, err := pipeline.IngestStatement(
		context.Background(), []byte("pdf"), nil,
		textExtractor("Totally unrelated document text"), nil, store,
	)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Parsed)
	assert.Equal(t, 0, result.Inserted)
	assert.Empty(t, store.inserted)
}
