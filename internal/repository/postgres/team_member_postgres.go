package postgres

import (
	"context"

	"vendordesk/internal/model"
	"vendordesk/internal/repository"
)

// TeamMemberPostgres is a PostgreSQL implementation of repository.TeamMemberRepository.
type TeamMemberPostgres struct {
	q querier
}

var _ repository.TeamMemberRepository = (*TeamMemberPostgres)(nil)

const teamMemberColumns = `id, user_id, title, department, phone, created_at`

func scanTeamMember(row rowScanner) (*model.TeamMember, error) {
	var m model.TeamMember
	if err := row.Scan(&m.ID, &m.UserID, &m.Title, &m.Department, &m.Phone, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *TeamMemberPostgres) List(ctx context.Context) ([]model.TeamMember, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+teamMemberColumns+` FROM team_members ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.TeamMember, 0)
	for rows.Next() {
		m, err := scanTeamMember(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

func (r *TeamMemberPostgres) FindByID(ctx context.Context, id int64) (*model.TeamMember, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+teamMemberColumns+` FROM team_members WHERE id = $1`, id)
	m, err := scanTeamMember(row)
	if err != nil {
		return nil, translate(err)
	}
	return m, nil
}

func (r *TeamMemberPostgres) Create(ctx context.Context, m *model.TeamMember) (*model.TeamMember, error) {
	const q = `
		INSERT INTO team_members (id, user_id, title, department, phone, created_at)
		SELECT COALESCE(MAX(id), 0) + 1, $1, $2, $3, $4, $5 FROM team_members
		RETURNING ` + teamMemberColumns
	row := r.q.QueryRowContext(ctx, q, m.UserID, m.Title, m.Department, m.Phone, m.CreatedAt)
	out, err := scanTeamMember(row)
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *TeamMemberPostgres) Update(ctx context.Context, m *model.TeamMember) error {
	const q = `UPDATE team_members SET title = $1, department = $2, phone = $3 WHERE id = $4`
	res, err := r.q.ExecContext(ctx, q, m.Title, m.Department, m.Phone, m.ID)
	if err != nil {
		return translate(err)
	}
	return affectedOrNotFound(res)
}

func (r *TeamMemberPostgres) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM team_members WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}
