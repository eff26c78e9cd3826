package validate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPhone(t *testing.T) {
	v := New()
	type form struct {
		Phone string `validate:"phone"`
	}

	assert.NoError(t, v.Struct(form{Phone: "081234567890"}))
	assert.NoError(t, v.Struct(form{Phone: "+6281234567890"}))
	assert.Error(t, v.Struct(form{Phone: "12345"}))
	assert.Error(t, v.Struct(form{Phone: "not-a-phone"}))
}

func TestPostalCode(t *testing.T) {
	v := New()
	type form struct {
		PostalCode string `validate:"postal_code"`
	}

	assert.NoError(t, v.Struct(form{PostalCode: "40135"}))
	assert.Error(t, v.Struct(form{PostalCode: "4013"}))
	assert.Error(t, v.Struct(form{PostalCode: "4013a"}))
}

func TestNickname(t *testing.T) {
	v := New()
	type form struct {
		Nickname string `validate:"nickname"`
	}

	assert.NoError(t, v.Struct(form{Nickname: "budi_123"}))
	assert.Error(t, v.Struct(form{Nickname: "ab"}))
	assert.Error(t, v.Struct(form{Nickname: "has space"}))
}

func TestPassword(t *testing.T) {
	v := New()
	type form struct {
		Password string `validate:"password"`
	}

	assert.NoError(t, v.Struct(form{Password: "Str0ngPass"}))
	assert.Error(t, v.Struct(form{Password: "short1A"}))
	assert.Error(t, v.Struct(form{Password: "alllowercase1"}))
	assert.Error(t, v.Struct(form{Password: "NODIGITSHERE"}))
}

func TestLuhn(t *testing.T) {
	assert.True(t, Luhn("4539 1488 0343 6467"))
	assert.True(t, Luhn("4111111111111111"))
	assert.False(t, Luhn("4111111111111112"))
	assert.False(t, Luhn("1234"))
	assert.False(t, Luhn("4111-1111-1111-111a"))
}

func TestPrice(t *testing.T) {
	v := New()
	type form struct {
		Price decimal.Decimal `validate:"price"`
	}

	assert.NoError(t, v.Struct(form{Price: decimal.NewFromInt(15000)}))
	assert.Error(t, v.Struct(form{Price: decimal.Zero}))
	assert.Error(t, v.Struct(form{Price: decimal.NewFromInt(-1)}))
}
