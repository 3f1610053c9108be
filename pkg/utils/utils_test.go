package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		layouts  []string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "ISO",
			input:    "2024-01-15",
			expected: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Formato americano com espaços",
			input:    "  01/15/2024 ",
			expected: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Formato configurado",
			input:    "15.01.2024",
			layouts:  []string{"02.01.2006"},
			expected: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "Formato configurado substitui os padrões",
			input:   "2024-01-15",
			layouts: []string{"02.01.2006"},
			wantErr: true,
		},
		{
			name:    "Data vazia",
			input:   "",
			wantErr: true,
		},
		{
			name:    "Data inválida",
			input:   "not a date",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, err := ParseDate(tt.input, tt.layouts...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(date), "got %s", date)
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "₹770", FormatCurrency("₹", 770))
	assert.Equal(t, "₹100", FormatCurrency("₹", 99.6))
	assert.Equal(t, "$1,234", FormatCurrency("$", 1234.4))
	assert.Equal(t, "₹0", FormatCurrency("₹", 0))
}

func TestFormatSignedPercent(t *testing.T) {
	assert.Equal(t, "+12.34%", FormatSignedPercent(0.1234))
	assert.Equal(t, "-5.00%", FormatSignedPercent(-0.05))
	assert.Equal(t, "+0.00%", FormatSignedPercent(0))
}

func TestGenerateID(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Za-z0-9]{6}$`)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id, err := GenerateID()
		require.NoError(t, err)
		assert.Regexp(t, pattern, id)
		seen[id] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestMakeRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("Date,Region\n"))
	}))
	defer server.Close()

	data, err := MakeRequest(context.Background(), server.URL+"/sales.csv")
	require.NoError(t, err)
	assert.Equal(t, "Date,Region\n", string(data))

	_, err = MakeRequest(context.Background(), server.URL+"/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = MakeRequest(ctx, server.URL+"/sales.csv")
	assert.Error(t, err)
}

func TestPrettyJson(t *testing.T) {
	out := PrettyJson(map[string]any{"b": 1, "a": "x"})
	assert.Equal(t, "{\n\t\"a\": \"x\",\n\t\"b\": 1\n}", out)

	assert.Equal(t, "{\n\t\"ok\": true\n}", PrettyJson([]byte(`{"ok":true}`)))
	assert.Equal(t, "not json", PrettyJson([]byte("not json")))
}
