package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/GR4C3FR/Endless-Charms-Jewelries-sub000/internal/catalog/domain"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(cred *Credentials) (*Repository, error) {
	psqlconn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cred.Host,
		cred.Port,
		cred.User,
		cred.Password,
		cred.DBName)

	db, err := sql.Open("postgres", psqlconn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if e2 := db.Ping(); e2 != nil {
		return nil, fmt.Errorf("failed to ping database: %w", e2)
	}

	db.SetMaxOpenConns(100)
	db.SetMaxIdleConns(10)
	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(cred *Credentials) error {
	driver, err := postgres.WithInstance(r.db, &postgres.Config{
		MigrationsTable: "catalog_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", cred.MigrationsDirPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if e2 := m.Up(); e2 != nil && !errors.Is(e2, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", e2)
	}

	return nil
}

const productColumns = `id, name, description, category, subcategory, base_price, image_url, in_stock, options, pricing, created_at, updated_at`

func (r *Repository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query product by id: %w", err)
	}
	return p, nil
}

func (r *Repository) ListProducts(ctx context.Context, filter domain.Filter) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	var args []interface{}

	if filter.Category != "" {
		args = append(args, string(filter.Category))
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Subcategory != "" {
		args = append(args, filter.Subcategory)
		query += fmt.Sprintf(" AND subcategory = $%d", len(args))
	}
	if filter.InStock != nil {
		args = append(args, *filter.InStock)
		query += fmt.Sprintf(" AND in_stock = $%d", len(args))
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		p, scanErr := scanProduct(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan product row: %w", scanErr)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return products, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	var optionsJSON, pricingJSON []byte

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Category,
		&p.Subcategory,
		&p.BasePrice,
		&p.ImageURL,
		&p.InStock,
		&optionsJSON,
		&pricingJSON,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(optionsJSON, &p.Options); err != nil {
		return nil, fmt.Errorf("unmarshal product options: %w", err)
	}
	if err := json.Unmarshal(pricingJSON, &p.Pricing); err != nil {
		return nil, fmt.Errorf("unmarshal product pricing: %w", err)
	}

	return &p, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}
