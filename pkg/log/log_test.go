package log

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() (Logger, *test.Hook) {
	base, hook := test.NewNullLogger()
	return &logger{entry: logrus.NewEntry(base)}, hook
}

func TestWithContext(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	l, hook := newTestLogger()

	ctx, correlationID := WithCorrelationID(context.Background())
	ctx = WithReportID(ctx, "Ab12Cd")

	l.WithContext(ctx).Info("relatório gerado")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, correlationID, entry.Data[correlationIDField])
	assert.Equal(t, "Ab12Cd", entry.Data["report_id"])
	assert.Equal(t, correlationID, GetCorrelationID(ctx))
	assert.Empty(t, GetCorrelationID(context.Background()))
}

func TestDevelopmentFieldFilter(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		validate func(t *testing.T, data logrus.Fields)
	}{
		{
			name: "Desenvolvimento mantém apenas campos relevantes",
			env:  "development",
			validate: func(t *testing.T, data logrus.Fields) {
				assert.Equal(t, "load", data["stage"])
				assert.Equal(t, 42, data["report_rows"])
				assert.NotContains(t, data, "hostname")
				assert.Contains(t, data, logrus.ErrorKey)
			},
		},
		{
			name: "Produção mantém todos os campos",
			env:  "production",
			validate: func(t *testing.T, data logrus.Fields) {
				assert.Equal(t, "load", data["stage"])
				assert.Equal(t, "api-1", data["hostname"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENV", tt.env)
			l, hook := newTestLogger()

			l.WithFields(Fields{"stage": "load", "hostname": "api-1"}).
				WithField("report_rows", 42).
				WithError(errors.New("boom")).
				Error("falha")

			entry := hook.LastEntry()
			require.NotNil(t, entry)
			tt.validate(t, entry.Data)
		})
	}
}
