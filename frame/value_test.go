package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueAsFloat(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want float64
		ok   bool
	}{
		{"float", Float(3.14), 3.14, true},
		{"int", Int(-2), -2, true},
		{"bool true", Bool(true), 1, true},
		{"numeric string", Str(" 27000 "), 27000, true},
		{"text string", Str("руб"), 0, false},
		{"empty string", Str(""), 0, false},
		{"missing", NA(), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.v.AsFloat()
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-12)
			}
		})
	}
}

func TestKeyKeepsKindsApart(t *testing.T) {
	assert.NotEqual(t, NA().Key(), Str("").Key())
	assert.NotEqual(t, Int(0).Key(), Str("0").Key())
	assert.NotEqual(t, Bool(false).Key(), Int(0).Key())
	assert.Equal(t, Float(1.5).Key(), Float(1.5).Key())
}

func TestStringRendering(t *testing.T) {
	assert.Equal(t, "", NA().String())
	assert.Equal(t, "13.17", Float(13.17).String())
	assert.Equal(t, "1", Bool(true).String())
	assert.Equal(t, "москва", Str("москва").String())
}
