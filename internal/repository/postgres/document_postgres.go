package postgres

import (
	"context"

	"vendordesk/internal/model"
	"vendordesk/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
type DocumentPostgres struct {
	q querier
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `id, vendor_id, title, file_name, file_path, file_type, file_size, uploaded_by_id, created_at`

func scanDocument(row rowScanner) (*model.Document, error) {
	var d model.Document
	if err := row.Scan(
		&d.ID,
		&d.VendorID,
		&d.Title,
		&d.FileName,
		&d.FilePath,
		&d.FileType,
		&d.FileSize,
		&d.UploadedByID,
		&d.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DocumentPostgres) list(ctx context.Context, q string, args ...any) ([]model.Document, error) {
	rows, err := r.q.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	return items, rows.Err()
}

// ListByVendor returns the documents attached to one vendor ordered by id.
func (r *DocumentPostgres) ListByVendor(ctx context.Context, vendorID int64) ([]model.Document, error) {
	return r.list(ctx, `SELECT `+documentColumns+` FROM documents WHERE vendor_id = $1 ORDER BY id`, vendorID)
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id int64) (*model.Document, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id)
	d, err := scanDocument(row)
	if err != nil {
		return nil, translate(err)
	}
	return d, nil
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (id, vendor_id, title, file_name, file_path, file_type, file_size, uploaded_by_id, created_at)
		SELECT COALESCE(MAX(id), 0) + 1, $1, $2, $3, $4, $5, $6, $7, $8 FROM documents
		RETURNING ` + documentColumns
	row := r.q.QueryRowContext(ctx, q,
		doc.VendorID,
		doc.Title,
		doc.FileName,
		doc.FilePath,
		doc.FileType,
		doc.FileSize,
		doc.UploadedByID,
		doc.CreatedAt,
	)
	out, err := scanDocument(row)
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// Delete removes a document by ID.
func (r *DocumentPostgres) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}
