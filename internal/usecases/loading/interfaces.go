package loading

import (
	"context"
	"io"

	"github.com/vfg2006/sales-report-api/internal/domain"
)

// Loader define a leitura de uma fonte tabular de vendas para um Dataset
type Loader interface {
	// Load lê a fonte já aberta; o nome define o formato (.xlsx ou texto delimitado)
	Load(ctx context.Context, name string, r io.Reader) (*domain.Dataset, error)

	// LoadFile abre e lê um arquivo local
	LoadFile(ctx context.Context, path string) (*domain.Dataset, error)

	// LoadURL busca a fonte por HTTP(S)
	LoadURL(ctx context.Context, url string) (*domain.Dataset, error)
}
