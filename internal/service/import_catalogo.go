package service

import (
	"context"
	"strings"

	"github.com/global-ministries/global-connect-sub001/internal/domain"
	"github.com/google/uuid"
)

type TipoCatalogo int

const (
	CatalogoTemporada TipoCatalogo = iota
	CatalogoSegmento
)

// CatalogStore reads the season and segment catalogs.
type CatalogStore interface {
	ListTemporadas(ctx context.Context) ([]domain.Temporada, error)
	ListSegmentos(ctx context.Context) ([]domain.Segmento, error)
}

// Catalogo is a snapshot of the catalogs taken at the start of an import.
// Names created after the snapshot stay unresolved for that run.
type Catalogo struct {
	temporadas map[string]uuid.UUID
	segmentos  map[string]uuid.UUID
}

func CargarCatalogo(ctx context.Context, store CatalogStore) (*Catalogo, error) {
	temporadas, err := store.ListTemporadas(ctx)
	if err != nil {
		return nil, err
	}
	segmentos, err := store.ListSegmentos(ctx)
	if err != nil {
		return nil, err
	}

	c := &Catalogo{
		temporadas: make(map[string]uuid.UUID, len(temporadas)),
		segmentos:  make(map[string]uuid.UUID, len(segmentos)),
	}
	for _, t := range temporadas {
		c.temporadas[claveCatalogo(t.Nombre)] = t.ID
	}
	for _, s := range segmentos {
		c.segmentos[claveCatalogo(s.Nombre)] = s.ID
	}
	return c, nil
}

// Resolver looks a name up by case-insensitive exact match.
func (c *Catalogo) Resolver(tipo TipoCatalogo, nombre string) (uuid.UUID, bool) {
	m := c.segmentos
	if tipo == CatalogoTemporada {
		m = c.temporadas
	}
	id, ok := m[claveCatalogo(nombre)]
	return id, ok
}

func claveCatalogo(nombre string) string {
	return strings.ToLower(strings.TrimSpace(nombre))
}
