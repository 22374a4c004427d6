package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/splitflow/splitflow-api/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestDeriveBalanceStatus(t *testing.T) {
	tests := []struct {
		name string
		net  decimal.Decimal
		want domain.BalanceStatus
	}{
		{
			name: "positive net is owed money",
			net:  decimal.RequireFromString("0.01"),
			want: domain.StatusOwedMoney,
		},
		{
			name: "negative net owes money",
			net:  decimal.RequireFromString("-10.00"),
			want: domain.StatusOwesMoney,
		},
		{
			name: "zero net is settled",
			net:  decimal.Zero,
			want: domain.StatusSettled,
		},
		{
			name: "zero with trailing decimals is still settled",
			net:  decimal.RequireFromString("0.0000"),
			want: domain.StatusSettled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.DeriveBalanceStatus(tt.net)
			assert.Equal(t, tt.want, got)
		})
	}
}
