package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardTextRoundTrip(t *testing.T) {
	for _, c := range Cards {
		text, err := c.MarshalText()
		require.NoError(t, err)

		var got Card
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, c, got)
	}

	// Short aliases parse too.
	var c Card
	require.NoError(t, c.UnmarshalText([]byte("b")))
	assert.Equal(t, CardB, c)

	assert.Error(t, c.UnmarshalText([]byte("card_d")))
}

func TestApplyDefaults(t *testing.T) {
	var r RuleSet
	r.ApplyDefaults()

	assert.Equal(t, DefaultPaymentDayA, r.CardA.PaymentDay)
	assert.Equal(t, DefaultPaymentDayB, r.CardB.PaymentDay)
	assert.Equal(t, DefaultPaymentDayC, r.CardC.PaymentDay)
	assert.Equal(t, DefaultRentDay, r.RentDay)
	assert.Equal(t, time.Thursday, r.SpendingWeekday)
}

func TestApplyDefaultsKeepsConfiguredValues(t *testing.T) {
	r := RuleSet{
		RentDay:         1,
		SpendingWeekday: time.Saturday,
	}
	r.CardA.PaymentDay = 15
	r.ApplyDefaults()

	assert.Equal(t, 15, r.CardA.PaymentDay)
	assert.Equal(t, 1, r.RentDay)
	assert.Equal(t, time.Saturday, r.SpendingWeekday)
}

func TestCardName(t *testing.T) {
	var r RuleSet
	assert.Equal(t, "Card B", r.CardName(CardB))

	r.CardB.Name = "Sapphire"
	assert.Equal(t, "Sapphire", r.CardName(CardB))
}

func TestSeed(t *testing.T) {
	r := RuleSet{
		Checking:       decimal.NewFromInt(999),
		PaycheckAmount: decimal.NewFromInt(2000),
	}
	r.CardA.Balance = decimal.NewFromInt(50)
	r.CardA.PaymentAmount = decimal.NewFromInt(150)

	snap := NewBalanceSnapshot()
	snap.Checking = decimal.NewFromInt(1234)
	snap.Balances[CardA] = decimal.NewFromInt(600)
	snap.Pending[CardA] = decimal.NewFromInt(75)
	snap.Statements[CardC] = decimal.NewFromInt(240)

	r.Seed(snap)

	assert.True(t, r.Checking.Equal(decimal.NewFromInt(1234)))
	assert.True(t, r.CardA.Balance.Equal(decimal.NewFromInt(600)))
	assert.True(t, r.CardA.Pending.Equal(decimal.NewFromInt(75)))
	assert.True(t, r.CardC.Statement.Equal(decimal.NewFromInt(240)))

	// Accounts absent from the snapshot keep their values, and strategy
	// fields are never touched.
	assert.True(t, r.CardB.Balance.IsZero())
	assert.True(t, r.CardA.PaymentAmount.Equal(decimal.NewFromInt(150)))
	assert.True(t, r.PaycheckAmount.Equal(decimal.NewFromInt(2000)))
}

func TestSeedNilSnapshot(t *testing.T) {
	r := RuleSet{Checking: decimal.NewFromInt(10)}
	r.Seed(nil)
	assert.True(t, r.Checking.Equal(decimal.NewFromInt(10)))
}

func TestTotalCardDebt(t *testing.T) {
	var r RuleSet
	r.CardA.Balance = decimal.NewFromInt(100)
	r.CardB.Balance = decimal.NewFromFloat(25.50)
	r.CardC.Balance = decimal.NewFromInt(4)

	assert.True(t, r.TotalCardDebt().Equal(decimal.NewFromFloat(129.50)))
}

func TestDailySnapshotJSONUsesCardNames(t *testing.T) {
	snap := NewDailySnapshot(time.Date(2025, 9, 4, 0, 0, 0, 0, time.UTC))
	snap.Cards[CardA] = decimal.NewFromInt(600)
	snap.Payments[CardA] = decimal.NewFromInt(150)

	data, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"card_a"`)
}

func TestDailySnapshotAggregates(t *testing.T) {
	snap := NewDailySnapshot(time.Date(2025, 9, 4, 0, 0, 0, 0, time.UTC))
	snap.Checking = decimal.NewFromInt(-5)
	snap.Cards[CardA] = decimal.NewFromInt(100)
	snap.Cards[CardB] = decimal.NewFromInt(200)
	snap.Payments[CardA] = decimal.NewFromInt(40)
	snap.Payments[CardC] = decimal.NewFromInt(60)

	assert.True(t, snap.TotalCardDebt().Equal(decimal.NewFromInt(300)))
	assert.True(t, snap.TotalPayments().Equal(decimal.NewFromInt(100)))
	assert.True(t, snap.NetPosition().Equal(decimal.NewFromInt(-305)))
	assert.True(t, snap.IsCheckingNegative())
	assert.True(t, snap.HasEvents())

	quiet := NewDailySnapshot(snap.Date)
	assert.False(t, quiet.HasEvents())
	assert.False(t, quiet.IsCheckingNegative())
}
