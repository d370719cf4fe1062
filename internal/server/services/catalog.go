package services

import (
	"context"
	"database/sql"

	"github.com/dkovalev7/scentshop/internal/server/models"
	"github.com/dkovalev7/scentshop/internal/server/repositories/repomanager"
)

// CatalogService manages the perfume catalog.
type CatalogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCatalogService(db *sql.DB, m repomanager.RepositoryManager) *CatalogService {
	return &CatalogService{db: db, repomanager: m}
}

// List returns a page of active perfumes.
func (s *CatalogService) List(ctx context.Context, skip, limit int) ([]models.Perfume, error) {
	repo := s.repomanager.Perfumes(s.db)
	return repo.List(ctx, skip, limit)
}

func (s *CatalogService) Get(ctx context.Context, id int64) (*models.Perfume, error) {
	repo := s.repomanager.Perfumes(s.db)
	return repo.GetByID(ctx, id)
}

func (s *CatalogService) Create(ctx context.Context, p *models.Perfume) (*models.Perfume, error) {
	repo := s.repomanager.Perfumes(s.db)
	return repo.Create(ctx, p)
}

func (s *CatalogService) Update(ctx context.Context, p *models.Perfume) (*models.Perfume, error) {
	repo := s.repomanager.Perfumes(s.db)
	return repo.Update(ctx, p)
}

// Deactivate hides a perfume from the catalog. Order history keeps its rows.
func (s *CatalogService) Deactivate(ctx context.Context, id int64) error {
	repo := s.repomanager.Perfumes(s.db)
	return repo.Deactivate(ctx, id)
}
