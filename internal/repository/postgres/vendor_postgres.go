package postgres

import (
	"context"

	"vendordesk/internal/model"
	"vendordesk/internal/repository"
)

// VendorPostgres is a PostgreSQL implementation of repository.VendorRepository.
type VendorPostgres struct {
	q querier
}

var _ repository.VendorRepository = (*VendorPostgres)(nil)

const vendorColumns = `id, name, product, account_rep, account_rep_phone, account_rep_email,
	support_level, notes, primary_contact_id, secondary_contact_id, created_at, updated_at`

func scanVendor(row rowScanner) (*model.Vendor, error) {
	var v model.Vendor
	if err := row.Scan(
		&v.ID,
		&v.Name,
		&v.Product,
		&v.AccountRep,
		&v.AccountRepPhone,
		&v.AccountRepEmail,
		&v.SupportLevel,
		&v.Notes,
		&v.PrimaryContactID,
		&v.SecondaryContactID,
		&v.CreatedAt,
		&v.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VendorPostgres) List(ctx context.Context) ([]model.Vendor, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+vendorColumns+` FROM vendors ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Vendor, 0)
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *v)
	}
	return items, rows.Err()
}

func (r *VendorPostgres) FindByID(ctx context.Context, id int64) (*model.Vendor, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE id = $1`, id)
	v, err := scanVendor(row)
	if err != nil {
		return nil, translate(err)
	}
	return v, nil
}

func (r *VendorPostgres) Create(ctx context.Context, v *model.Vendor) (*model.Vendor, error) {
	const q = `
		INSERT INTO vendors (id, name, product, account_rep, account_rep_phone, account_rep_email,
			support_level, notes, primary_contact_id, secondary_contact_id, created_at, updated_at)
		SELECT COALESCE(MAX(id), 0) + 1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11 FROM vendors
		RETURNING ` + vendorColumns
	row := r.q.QueryRowContext(ctx, q,
		v.Name,
		v.Product,
		v.AccountRep,
		v.AccountRepPhone,
		v.AccountRepEmail,
		string(v.SupportLevel),
		v.Notes,
		v.PrimaryContactID,
		v.SecondaryContactID,
		v.CreatedAt,
		v.UpdatedAt,
	)
	out, err := scanVendor(row)
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *VendorPostgres) Update(ctx context.Context, v *model.Vendor) error {
	const q = `
		UPDATE vendors SET name = $1, product = $2, account_rep = $3, account_rep_phone = $4,
			account_rep_email = $5, support_level = $6, notes = $7, primary_contact_id = $8,
			secondary_contact_id = $9, updated_at = $10
		WHERE id = $11`
	res, err := r.q.ExecContext(ctx, q,
		v.Name,
		v.Product,
		v.AccountRep,
		v.AccountRepPhone,
		v.AccountRepEmail,
		string(v.SupportLevel),
		v.Notes,
		v.PrimaryContactID,
		v.SecondaryContactID,
		v.UpdatedAt,
		v.ID,
	)
	if err != nil {
		return translate(err)
	}
	return affectedOrNotFound(res)
}

func (r *VendorPostgres) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM vendors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}
