package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/cartem-panel/pkg/money"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "$1,234.50", money.Format(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "$0.00", money.Format(decimal.Zero))
	assert.Equal(t, "$1,000,000.13", money.Format(decimal.RequireFromString("1000000.129")))
}

func TestPlain(t *testing.T) {
	assert.Equal(t, "1234.50", money.Plain(decimal.RequireFromString("1234.5")))
}
