package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Las tarifas por defecto deben ser positivas y crecientes:
// standard < express < next_day.
func TestLoad_TarifasEnvioPorDefecto(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	std, ok := cfg.Shipping.RateFor("standard")
	require.True(t, ok)
	exp, ok := cfg.Shipping.RateFor("express")
	require.True(t, ok)
	next, ok := cfg.Shipping.RateFor("next_day")
	require.True(t, ok)

	assert.True(t, std.IsPositive())
	assert.True(t, exp.GreaterThan(std))
	assert.True(t, next.GreaterThan(exp))
}

func TestShippingConfig_MetodoDesconocido(t *testing.T) {
	s := ShippingConfig{
		Standard: decimal.NewFromInt(10),
		Express:  decimal.NewFromInt(20),
		NextDay:  decimal.NewFromInt(30),
	}
	_, ok := s.RateFor("paloma")
	assert.False(t, ok)
}
