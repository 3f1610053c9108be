package visualizing

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/sales-report-api/internal/config"
	"github.com/vfg2006/sales-report-api/internal/domain"
	"github.com/vfg2006/sales-report-api/internal/usecases/visualizing/mocks"
)

func salesDataset() *domain.Dataset {
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return domain.NewDataset([]domain.Record{
		{Date: date, Region: "South", Product: "Widget", Sales: 100, Profit: 10},
		{Date: date, Region: "North", Product: "Gadget", Sales: 300, Profit: 30},
		{Date: date, Region: "East", Product: "Widget", Sales: 150, Profit: -5},
		{Date: date, Region: "South", Product: "Gizmo", Sales: 200, Profit: 15},
		{Date: date, Region: "West", Product: "Gadget", Sales: 300, Profit: 0},
	})
}

func TestService_Specs(t *testing.T) {
	service := NewService(config.DefaultReport(), nil)

	specs, err := service.Specs(salesDataset())
	require.NoError(t, err)
	require.Len(t, specs, 2)

	region := specs[0]
	assert.Equal(t, domain.RegionChart, region.Name)
	assert.Equal(t, domain.ChartKindBar, region.Kind)
	assert.Equal(t, "Sales by Region", region.Title)
	assert.Equal(t, "Region", region.XLabel)
	assert.Contains(t, region.YLabel, "Total Sales")
	assert.Equal(t, 0.0, region.LabelRotation)
	assert.Equal(t, "#054ADA", region.Color)
	// Empate entre North e West resolvido pela ordem alfabética
	assert.Equal(t, []string{"North", "West", "South", "East"}, region.Labels)
	assert.Equal(t, []float64{300, 300, 300, 150}, region.Values)

	product := specs[1]
	assert.Equal(t, domain.ProductChart, product.Name)
	assert.Equal(t, domain.ChartKindPie, product.Kind)
	assert.Equal(t, "Product Profit Share", product.Title)
	assert.Equal(t, 90.0, product.StartAngle)
	assert.Equal(t, "%.1f%%", product.PercentFormat)
	// Ordem de primeira aparição
	assert.Equal(t, []string{"Widget", "Gadget", "Gizmo"}, product.Labels)
	assert.Equal(t, []float64{5, 30, 15}, product.Values)
}

func TestService_Generate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name     string
		dataset  *domain.Dataset
		setup    func(renderer *mocks.MockRenderer)
		validate func(t *testing.T, bundle domain.ChartBundle, err error)
	}{
		{
			name:    "Gera exatamente dois gráficos codificados em base64",
			dataset: salesDataset(),
			setup: func(renderer *mocks.MockRenderer) {
				renderer.EXPECT().
					Render(gomock.Any()).
					DoAndReturn(func(spec domain.ChartSpec) ([]byte, error) {
						return []byte("png:" + spec.Name), nil
					}).
					Times(2)
			},
			validate: func(t *testing.T, bundle domain.ChartBundle, err error) {
				require.NoError(t, err)
				require.Len(t, bundle, 2)

				for _, name := range []string{domain.RegionChart, domain.ProductChart} {
					decoded, err := base64.StdEncoding.DecodeString(bundle[name])
					require.NoError(t, err)
					assert.Equal(t, "png:"+name, string(decoded))
				}
			},
		},
		{
			name:    "Falha do renderizador vira erro de renderização",
			dataset: salesDataset(),
			setup: func(renderer *mocks.MockRenderer) {
				renderer.EXPECT().
					Render(gomock.Any()).
					Return(nil, errors.New("canvas unavailable"))
			},
			validate: func(t *testing.T, bundle domain.ChartBundle, err error) {
				assert.Nil(t, bundle)
				assert.ErrorIs(t, err, domain.ErrRender)
				assert.Contains(t, err.Error(), domain.RegionChart)
			},
		},
		{
			name:    "Imagem vazia é rejeitada",
			dataset: salesDataset(),
			setup: func(renderer *mocks.MockRenderer) {
				renderer.EXPECT().Render(gomock.Any()).Return([]byte{}, nil)
			},
			validate: func(t *testing.T, bundle domain.ChartBundle, err error) {
				assert.ErrorIs(t, err, domain.ErrRender)
			},
		},
		{
			name:    "Dataset vazio não chama o renderizador",
			dataset: domain.NewDataset(nil),
			setup:   func(renderer *mocks.MockRenderer) {},
			validate: func(t *testing.T, bundle domain.ChartBundle, err error) {
				assert.ErrorIs(t, err, domain.ErrEmptyDataset)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer := mocks.NewMockRenderer(ctrl)
			tt.setup(renderer)

			bundle, err := NewService(config.DefaultReport(), renderer).Generate(context.Background(), tt.dataset)
			tt.validate(t, bundle, err)
		})
	}
}
