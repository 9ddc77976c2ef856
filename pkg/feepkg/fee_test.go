package feepkg

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	require.NoError(t, err)

	return d
}

func withdrawalSchedule(t *testing.T) Schedule {
	return New(dec(t, "0.15"), dec(t, "100"), 0)
}

func TestFee(t *testing.T) {
	s := withdrawalSchedule(t)

	testCases := []struct {
		name    string
		amount  string
		wantFee string
	}{
		{name: "ZeroAmountChargesFlatFee", amount: "0", wantFee: "100"},
		{name: "FlatBranch", amount: "500", wantFee: "100"},
		{name: "ExactBreakeven", amount: "666.67", wantFee: "100.0005"},
		{name: "PercentageBranch", amount: "1000", wantFee: "150"},
		{name: "JustBelowBreakeven", amount: "666", wantFee: "100"},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			got := s.Fee(dec(t, tc.amount))

			require.True(t, got.Equal(dec(t, tc.wantFee)),
				"Fee(%s) = %s, want %s", tc.amount, got, tc.wantFee)
		})
	}
}

func TestFeeNeverBelowFlatFee(t *testing.T) {
	s := withdrawalSchedule(t)
	flatFee := dec(t, "100")

	for amount := int64(0); amount <= 2000; amount += 7 {
		fee := s.Fee(decimal.NewFromInt(amount))
		require.True(t, fee.GreaterThanOrEqual(flatFee),
			"Fee(%d) = %s below flat fee", amount, fee)
	}
}

func TestTotal(t *testing.T) {
	s := withdrawalSchedule(t)

	require.True(t, s.Total(dec(t, "500")).Equal(dec(t, "600")))
	require.True(t, s.Total(dec(t, "1000")).Equal(dec(t, "1150")))
}

func TestQuote(t *testing.T) {
	s := withdrawalSchedule(t)

	q := s.Quote(dec(t, "1000"))

	require.True(t, q.Principal.Equal(dec(t, "1000")))
	require.True(t, q.Fee.Equal(dec(t, "150")))
	require.True(t, q.Total.Equal(q.Principal.Add(q.Fee)))
}

func TestMaxWithdrawable(t *testing.T) {
	s := withdrawalSchedule(t)

	testCases := []struct {
		name    string
		balance string
		want    string
	}{
		{name: "PercentageBranch", balance: "1000", want: "869"},
		{name: "FlatBranch", balance: "500", want: "400"},
		{name: "BalanceEqualsFlatFee", balance: "100", want: "0"},
		{name: "BalanceBelowFlatFee", balance: "50", want: "0"},
		{name: "ZeroBalance", balance: "0", want: "0"},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			got := s.MaxWithdrawable(dec(t, tc.balance))

			require.True(t, got.Equal(dec(t, tc.want)),
				"MaxWithdrawable(%s) = %s, want %s", tc.balance, got, tc.want)
		})
	}
}

func TestMaxWithdrawableIsTightUpperBound(t *testing.T) {
	s := withdrawalSchedule(t)
	one := decimal.NewFromInt(1)

	for balance := int64(101); balance <= 5000; balance += 13 {
		b := decimal.NewFromInt(balance)
		max := s.MaxWithdrawable(b)

		require.True(t, s.Total(max).LessThanOrEqual(b),
			"Total(MaxWithdrawable(%d)) = %s exceeds balance", balance, s.Total(max))
		require.True(t, s.Total(max.Add(one)).GreaterThan(b),
			"MaxWithdrawable(%d) = %s is not tight", balance, max)
	}
}

func TestMaxWithdrawableRoundTrip(t *testing.T) {
	s := withdrawalSchedule(t)

	for amount := int64(1); amount <= 3000; amount += 11 {
		x := decimal.NewFromInt(amount)

		got := s.MaxWithdrawable(s.Total(x))
		require.True(t, got.GreaterThanOrEqual(x),
			"MaxWithdrawable(Total(%d)) = %s under-derives", amount, got)
	}
}

func TestFundingScheduleIsIndependent(t *testing.T) {
	funding := New(dec(t, "0.10"), dec(t, "100"), 0)

	require.True(t, funding.Fee(dec(t, "500")).Equal(dec(t, "100")))
	require.True(t, funding.Fee(dec(t, "2000")).Equal(dec(t, "200")))

	// The withdrawal schedule keeps its own rate.
	require.True(t, withdrawalSchedule(t).Fee(dec(t, "2000")).Equal(dec(t, "300")))
}
