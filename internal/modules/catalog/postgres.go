package catalog

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type postgres struct{ db *sql.DB }

// NewPostgresRepository creates a Postgres-backed catalog repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgres{db: db} }

func (r *postgres) CreateFileWithProducts(ctx context.Context, f *UploadedFile, products []*Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
INSERT INTO uploaded_files (id,filename,upload_date,location,product_count,session_id)
VALUES ($1,$2,$3,$4,$5,NULL)`,
		f.ID, f.Filename, f.UploadDate, f.Location, f.ProductCount)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO products (id,file_id,stock_no,sku,name,quantity,price,stock_value,location,expected_qty)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range products {
		if _, err := stmt.ExecContext(ctx, p.ID, p.FileID, p.StockNo, p.SKU, p.Name,
			p.Quantity, p.Price, p.StockValue, p.Location, p.ExpectedQty); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *postgres) ListFiles(ctx context.Context) ([]*UploadedFile, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id,filename,upload_date,location,product_count,session_id
FROM uploaded_files ORDER BY upload_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var files []*UploadedFile
	for rows.Next() {
		f := &UploadedFile{}
		if err := rows.Scan(&f.ID, &f.Filename, &f.UploadDate, &f.Location,
			&f.ProductCount, &f.SessionID); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

func (r *postgres) GetFile(ctx context.Context, id string) (*UploadedFile, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	f := &UploadedFile{}
	err = r.db.QueryRowContext(ctx, `
SELECT id,filename,upload_date,location,product_count,session_id
FROM uploaded_files WHERE id=$1`, uid).
		Scan(&f.ID, &f.Filename, &f.UploadDate, &f.Location, &f.ProductCount, &f.SessionID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id,file_id,stock_no,sku,name,quantity,price,stock_value,location,expected_qty
FROM products WHERE file_id=$1 ORDER BY name ASC`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		p := &Product{}
		if err := rows.Scan(&p.ID, &p.FileID, &p.StockNo, &p.SKU, &p.Name,
			&p.Quantity, &p.Price, &p.StockValue, &p.Location, &p.ExpectedQty); err != nil {
			return nil, err
		}
		f.Products = append(f.Products, p)
	}
	return f, rows.Err()
}

func (r *postgres) DeleteFile(ctx context.Context, id string) (int64, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM uploaded_files WHERE id=$1`, uid)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *postgres) DistinctLocations(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT DISTINCT location FROM products ORDER BY location ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var locations []string
	for rows.Next() {
		var loc string
		if err := rows.Scan(&loc); err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}
