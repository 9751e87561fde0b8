package database

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type priced struct {
	Amount decimal.Decimal `bson:"amount"`
}

func TestDecimalCodec_StoresDecimal128(t *testing.T) {
	reg := NewRegistry()

	raw, err := bson.MarshalWithRegistry(reg, priced{Amount: decimal.RequireFromString("42.50")})
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	d128, ok := doc["amount"].(primitive.Decimal128)
	require.True(t, ok, "amount should be stored as Decimal128, got %T", doc["amount"])
	assert.Equal(t, "42.50", d128.String())

	var out priced
	require.NoError(t, bson.UnmarshalWithRegistry(reg, raw, &out))
	assert.True(t, out.Amount.Equal(decimal.RequireFromString("42.5")))
}

func TestDecimalCodec_KeepsScale(t *testing.T) {
	reg := NewRegistry()

	for _, in := range []string{"42.50", "0.125", "120", "7.0"} {
		t.Run(in, func(t *testing.T) {
			raw, err := bson.MarshalWithRegistry(reg, priced{Amount: decimal.RequireFromString(in)})
			require.NoError(t, err)

			var doc bson.M
			require.NoError(t, bson.Unmarshal(raw, &doc))
			assert.Equal(t, in, doc["amount"].(primitive.Decimal128).String())

			var out priced
			require.NoError(t, bson.UnmarshalWithRegistry(reg, raw, &out))
			assert.True(t, out.Amount.Equal(decimal.RequireFromString(in)))
		})
	}
}

func TestDecimalCodec_DecodesLegacyNumbers(t *testing.T) {
	reg := NewRegistry()

	cases := map[string]bson.M{
		"double": {"amount": 12.25},
		"int32":  {"amount": int32(12)},
		"int64":  {"amount": int64(12)},
		"string": {"amount": "12.25"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			raw, err := bson.Marshal(in)
			require.NoError(t, err)

			var out priced
			require.NoError(t, bson.UnmarshalWithRegistry(reg, raw, &out))
			assert.True(t, out.Amount.GreaterThanOrEqual(decimal.NewFromInt(12)))
			assert.True(t, out.Amount.LessThanOrEqual(decimal.RequireFromString("12.25")))
		})
	}
}
