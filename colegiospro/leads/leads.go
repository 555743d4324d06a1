package leads

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

// stores a contact-form submission
func (r *repository) Create(ctx context.Context, req *CreateLeadRequest, clientIP string) (*Lead, error) {
	row := r.db.QueryRow(
		ctx,
		queryCreateLead,
		req.Colegio,
		req.Region,
		req.Cantidad,
		req.Decano,
		req.Admin,
		req.Tesoreria,
		req.Secretaria,
		clientIP,
	)

	return scanLead(row)
}

// lists all leads, newest first
func (r *repository) List(ctx context.Context) ([]*Lead, error) {
	rows, err := r.db.Query(ctx, queryListLeads)
	if err != nil {
		return nil, err
	}

	defer rows.Close()
	list := make([]*Lead, 0)

	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}

		list = append(list, lead)
	}

	return list, rows.Err()
}

func scanLead(row pgx.Row) (*Lead, error) {
	var l Lead

	err := row.Scan(
		&l.ID,
		&l.Colegio,
		&l.Region,
		&l.Cantidad,
		&l.DecanoPhone,
		&l.AdminPhone,
		&l.TreasuryPhone,
		&l.SecretaryPhone,
		&l.ClientIP,
		&l.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &l, nil
}
