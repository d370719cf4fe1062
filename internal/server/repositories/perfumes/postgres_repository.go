package perfumes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkovalev7/scentshop/internal/common"
	"github.com/dkovalev7/scentshop/internal/dbx"
	"github.com/dkovalev7/scentshop/internal/server/models"
)

const perfumeColumns = `id, name, brand, price, perfume_type, description, img_url,
	stock_quantity, volume, concentration, is_active, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanPerfume(row interface{ Scan(...any) error }, p *models.Perfume) error {
	return row.Scan(&p.ID, &p.Name, &p.Brand, &p.Price, &p.Type, &p.Description, &p.ImgURL,
		&p.StockQuantity, &p.Volume, &p.Concentration, &p.IsActive, &p.CreatedAt)
}

func (r *PostgresRepository) List(ctx context.Context, skip, limit int) ([]models.Perfume, error) {
	query := `SELECT ` + perfumeColumns + ` FROM perfumes
		 WHERE is_active
		 ORDER BY id
		 OFFSET $1 LIMIT $2
		 `

	rows, err := r.db.QueryContext(ctx, query, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.Perfume
	for rows.Next() {
		var p models.Perfume
		if err := scanPerfume(rows, &p); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Perfume, error) {
	query := `SELECT ` + perfumeColumns + ` FROM perfumes WHERE id = $1`

	p := &models.Perfume{}
	err := scanPerfume(r.db.QueryRowContext(ctx, query, id), p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Perfume) (*models.Perfume, error) {
	query :=
		`INSERT INTO perfumes (name, brand, price, perfume_type, description, img_url,
		     stock_quantity, volume, concentration, is_active)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		p.Name, p.Brand, p.Price, p.Type, p.Description, p.ImgURL,
		p.StockQuantity, p.Volume, p.Concentration, p.IsActive).Scan(&p.ID, &p.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) Update(ctx context.Context, p *models.Perfume) (*models.Perfume, error) {
	query :=
		`UPDATE perfumes
		 SET name = $2, brand = $3, price = $4, perfume_type = $5, description = $6,
		     img_url = $7, stock_quantity = $8, volume = $9, concentration = $10, is_active = $11
		 WHERE id = $1
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.Name, p.Brand, p.Price, p.Type, p.Description,
		p.ImgURL, p.StockQuantity, p.Volume, p.Concentration, p.IsActive).Scan(&p.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) Deactivate(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE perfumes SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) AdjustStock(ctx context.Context, id int64, delta int) (int, error) {
	query :=
		`UPDATE perfumes SET stock_quantity = stock_quantity + $2
		 WHERE id = $1
		 RETURNING stock_quantity
		 `

	var remaining int
	err := r.db.QueryRowContext(ctx, query, id, delta).Scan(&remaining)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return remaining, nil
}
