package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLowStock(t *testing.T) {
	cases := []struct {
		name  string
		stock int
		want  bool
	}{
		{"well below threshold", 3, true},
		{"zero", 0, true},
		{"just below threshold", 4, true},
		{"at threshold", 5, false},
		{"well above threshold", 10, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Product{Stock: tc.stock}
			require.Equal(t, tc.want, p.LowStock())
		})
	}
}

func TestDisplayPrice(t *testing.T) {
	cases := []struct {
		price float64
		want  string
	}{
		{19.9, "19.90"},
		{1.5, "1.50"},
		{0, "0.00"},
		{100, "100.00"},
		{2.999, "3.00"},
	}
	for _, tc := range cases {
		p := Product{Price: tc.price}
		require.Equal(t, tc.want, p.DisplayPrice())
	}
}

func TestImageURL(t *testing.T) {
	base := "http://backend.local"

	require.Equal(t, "", Product{}.ImageURL(base))
	require.Equal(t, "http://backend.local/uploads/a.png", Product{Image: "/uploads/a.png"}.ImageURL(base))
	require.Equal(t, "http://backend.local/uploads/a.png", Product{Image: "uploads/a.png"}.ImageURL(base))
	require.Equal(t, "http://backend.local/uploads/a.png", Product{Image: "/uploads/a.png"}.ImageURL(base+"/"))
	require.Equal(t, "https://cdn.example.com/a.png", Product{Image: "https://cdn.example.com/a.png"}.ImageURL(base))
}
