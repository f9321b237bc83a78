package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionRecord_Validate(t *testing.T) {
	assert.NoError(t, TransactionRecord{Volume: 0, Value: 0}.Validate())
	assert.ErrorIs(t, TransactionRecord{Volume: -5, Value: 10}.Validate(), ErrInvalidRecord)
	assert.ErrorIs(t, TransactionRecord{Volume: 5, Value: -10}.Validate(), ErrInvalidRecord)
}

func TestTransactionRecord_DeriveUnitPrice(t *testing.T) {
	derived := TransactionRecord{Volume: 40, Value: 240}
	derived.DeriveUnitPrice()
	assert.True(t, derived.HasUnitPrice)
	assert.Equal(t, 6.0, derived.UnitPrice)

	provided := TransactionRecord{Volume: 40, Value: 240, UnitPrice: 5.5, HasUnitPrice: true}
	provided.DeriveUnitPrice()
	assert.Equal(t, 5.5, provided.UnitPrice)

	zero := TransactionRecord{Volume: 0, Value: 10}
	zero.DeriveUnitPrice()
	assert.False(t, zero.HasUnitPrice)
}
