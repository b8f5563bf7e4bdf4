package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/simaogato/foliodash-backend/internal/domain"
)

// MockPriceSource is a mock implementation of PriceSource for testing
type MockPriceSource struct {
	mock.Mock
}

func (m *MockPriceSource) PricesInRange(ctx context.Context, from, to string, assetNames []string) ([]domain.Price, error) {
	args := m.Called(ctx, from, to, assetNames)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Price), args.Error(1)
}

func testRegistry() domain.AssetRegistry {
	return domain.BuildRegistry([]domain.Asset{
		{ID: "asset-aapl", Name: "AAPL", Type: domain.AssetTypeStock},
		{ID: "asset-btc", Name: "BTC", Type: domain.AssetTypeCrypto},
	})
}

func TestTimePeriod_Range(t *testing.T) {
	today := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		period   TimePeriod
		wantFrom string
	}{
		{PeriodWeek, "2024-06-08"},
		{PeriodMonth, "2024-05-15"},
		{Period3Months, "2024-03-15"},
		{Period6Months, "2023-12-15"},
		{PeriodYear, "2023-06-15"},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			from, to, err := tt.period.Range(today)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFrom, from)
			assert.Equal(t, "2024-06-15", to)
		})
	}
}

func TestTimePeriod_Range_CalendarUnits(t *testing.T) {
	// One calendar month back from March 31 normalizes through the
	// short month instead of subtracting a fixed 30 days.
	today := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	from, _, err := PeriodMonth.Range(today)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-02", from)
}

func TestTimePeriod_Range_Unknown(t *testing.T) {
	_, _, err := TimePeriod("2W").Range(time.Now())
	assert.Error(t, err)
}

func TestBuildSeries(t *testing.T) {
	ctx := context.Background()
	source := new(MockPriceSource)
	service := NewService(source, zap.NewNop())

	// Feed has rows for Jan 1 and Jan 3 only: Jan 2 is a gap and must
	// not appear in the output. BTC has no price on Jan 3.
	rows := []domain.Price{
		{ID: "price-BTC-2024-01-01", Asset: "BTC", Price: decimal.NewFromInt(40000), AsOf: "2024-01-01"},
		{ID: "price-AAPL-2024-01-03", Asset: "AAPL", Price: decimal.NewFromInt(110), AsOf: "2024-01-03"},
		{ID: "price-AAPL-2024-01-01", Asset: "AAPL", Price: decimal.NewFromInt(100), AsOf: "2024-01-01"},
	}
	source.On("PricesInRange", ctx, mock.Anything, mock.Anything, []string{"AAPL", "BTC"}).Return(rows, nil)

	quantities := map[string]decimal.Decimal{
		"asset-aapl": decimal.NewFromInt(10),
		"asset-btc":  decimal.RequireFromString("0.5"),
	}

	series, err := service.BuildSeries(ctx, PeriodMonth, testRegistry(), quantities)
	require.NoError(t, err)
	require.Len(t, series, 2)

	// Ascending by date
	assert.Equal(t, "2024-01-01", series[0].Date)
	assert.Equal(t, "2024-01-03", series[1].Date)

	// Jan 1: 10×100 + 0.5×40000 = 21000
	assert.True(t, series[0].Value.Equal(decimal.NewFromInt(21000)), "got %s", series[0].Value)
	// Jan 3: 10×110 + BTC missing (contributes 0) = 1100
	assert.True(t, series[1].Value.Equal(decimal.NewFromInt(1100)), "got %s", series[1].Value)

	source.AssertExpectations(t)
}

func TestBuildSeries_EmptyInputsSkipFetch(t *testing.T) {
	ctx := context.Background()
	source := new(MockPriceSource)
	service := NewService(source, zap.NewNop())

	series, err := service.BuildSeries(ctx, PeriodWeek, testRegistry(), nil)
	require.NoError(t, err)
	assert.Empty(t, series)
	assert.NotNil(t, series)

	series, err = service.BuildSeries(ctx, PeriodWeek, domain.AssetRegistry{}, map[string]decimal.Decimal{
		"asset-aapl": decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	assert.Empty(t, series)

	source.AssertNotCalled(t, "PricesInRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBuildSeries_QuantitiesOutsideRegistrySkipFetch(t *testing.T) {
	ctx := context.Background()
	source := new(MockPriceSource)
	service := NewService(source, zap.NewNop())

	// Quantities reference only unknown ids: no names to query
	series, err := service.BuildSeries(ctx, PeriodWeek, testRegistry(), map[string]decimal.Decimal{
		"asset-unlisted": decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	assert.Empty(t, series)

	source.AssertNotCalled(t, "PricesInRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBuildSeries_FetchFailure(t *testing.T) {
	ctx := context.Background()
	source := new(MockPriceSource)
	service := NewService(source, zap.NewNop())

	source.On("PricesInRange", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	series, err := service.BuildSeries(ctx, PeriodYear, testRegistry(), map[string]decimal.Decimal{
		"asset-aapl": decimal.NewFromInt(1),
	})
	assert.Error(t, err)
	assert.Nil(t, series)
	assert.ErrorContains(t, err, "fetch price series")
}
