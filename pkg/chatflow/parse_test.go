package chatflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"5 lakh", 500000},
		{"10 lakhs", 1000000},
		{"2 crore", 20000000},
		{"1.5 crores", 15000000},
		{"2cr", 20000000},
		{"50k", 50000},
		{"300 thousand", 300000},
		{"₹5,00,000", 500000},
		{"I need about 750000 rupees", 750000},
		{"no amount here", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseAmount(tt.input))
		})
	}
}

func TestParseIdentity(t *testing.T) {
	phone, pan := ParseIdentity("my number is 9876543210")
	assert.Equal(t, "9876543210", phone)
	assert.Empty(t, pan)

	phone, pan = ParseIdentity("pan is abcde1234f")
	assert.Empty(t, phone)
	assert.Equal(t, "ABCDE1234F", pan)

	phone, pan = ParseIdentity("9876543210 and ABCDE1234F")
	assert.Equal(t, "9876543210", phone)
	assert.Equal(t, "ABCDE1234F", pan)

	phone, pan = ParseIdentity("nothing useful")
	assert.Empty(t, phone)
	assert.Empty(t, pan)
}

func TestClassifyIdentity(t *testing.T) {
	phone, pan := ClassifyIdentity("9876543210")
	assert.Equal(t, "9876543210", phone)
	assert.Empty(t, pan)

	phone, pan = ClassifyIdentity(" abcde1234f ")
	assert.Empty(t, phone)
	assert.Equal(t, "ABCDE1234F", pan)

	phone, pan = ClassifyIdentity("123")
	assert.Empty(t, phone)
	assert.Empty(t, pan)
}

func TestCleanExtractedAmount(t *testing.T) {
	assert.Equal(t, 500000.0, CleanExtractedAmount("₹5,00,000"))
	assert.Equal(t, 500000.0, CleanExtractedAmount("500 000"))
	assert.Equal(t, 0.0, CleanExtractedAmount("five lakh"))
}

func TestFormatRupees(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{500, "500"},
		{5000, "5,000"},
		{50000, "50,000"},
		{500000, "5,00,000"},
		{1234567, "12,34,567"},
		{20000000, "2,00,00,000"},
		{-500000, "-5,00,000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatRupees(tt.amount))
	}
}
