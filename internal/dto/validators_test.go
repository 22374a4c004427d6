package dto_test

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/splitflow/splitflow-api/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimalGt0Validator(t *testing.T) {
	v := validator.New()
	require.NoError(t, dto.RegisterCustomValidators(v))

	type payload struct {
		Amount decimal.Decimal `validate:"decimalgt0"`
	}

	tests := []struct {
		name    string
		amount  string
		wantErr bool
	}{
		{name: "positive amount passes", amount: "0.01", wantErr: false},
		{name: "large amount passes", amount: "99999.9999", wantErr: false},
		{name: "zero fails", amount: "0", wantErr: true},
		{name: "zero with scale fails", amount: "0.00", wantErr: true},
		{name: "negative fails", amount: "-10.50", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(payload{Amount: decimal.RequireFromString(tt.amount)})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
