package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	apperrors "github.com/umalmyha/contacts/internal/errors"
	"github.com/umalmyha/contacts/internal/model"
)

// ContactNotFoundMsg is message of error raised for unknown contact id
const ContactNotFoundMsg = "Contact not found"

const (
	pgUniqueViolationCode    = "23505"
	pgEmailUniqueConstraint  = "contacts_email_key"
	pgContactSelectedColumns = "id, first_name, last_name, email, phone, company, job_title"
)

// ContactRepository represents behavior of contacts storage
type ContactRepository interface {
	FindByID(context.Context, string) (*model.Contact, error)
	FindAll(context.Context) ([]*model.Contact, error)
	Create(context.Context, *model.Contact) error
	Update(context.Context, string, model.ContactPatch) (*model.Contact, error)
	DeleteByID(context.Context, string) error
}

type postgresContactRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresContactRepository builds ContactRepository backed by postgresql
func NewPostgresContactRepository(p *pgxpool.Pool) ContactRepository {
	return &postgresContactRepository{pool: p}
}

func (r *postgresContactRepository) FindByID(ctx context.Context, id string) (*model.Contact, error) {
	q := "SELECT " + pgContactSelectedColumns + " FROM contacts WHERE id = $1"

	c, err := r.scanRow(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *postgresContactRepository) FindAll(ctx context.Context) ([]*model.Contact, error) {
	contacts := make([]*model.Contact, 0)
	q := "SELECT " + pgContactSelectedColumns + " FROM contacts ORDER BY seq"

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		c, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *postgresContactRepository) Create(ctx context.Context, c *model.Contact) error {
	q := `INSERT INTO contacts(id, first_name, last_name, email, phone, company, job_title)
		  VALUES($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.pool.Exec(ctx, q, c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.Company, c.JobTitle); err != nil {
		if r.isEmailViolation(err) {
			return apperrors.NewDuplicateEmailErr(c.Email)
		}
		return err
	}
	return nil
}

func (r *postgresContactRepository) Update(ctx context.Context, id string, p model.ContactPatch) (*model.Contact, error) {
	q := `UPDATE contacts SET first_name = COALESCE($2, first_name),
				last_name = COALESCE($3, last_name),
				email = COALESCE($4, email),
				phone = COALESCE($5, phone),
				company = COALESCE($6, company),
				job_title = COALESCE($7, job_title)
		  WHERE id = $1
		  RETURNING ` + pgContactSelectedColumns

	row := r.pool.QueryRow(ctx, q, id, p.FirstName, p.LastName, p.Email, p.Phone, p.Company, p.JobTitle)
	c, err := r.scanRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewEntryNotFoundErr(ContactNotFoundMsg)
		}

		if r.isEmailViolation(err) && p.Email != nil {
			return nil, apperrors.NewDuplicateEmailErr(*p.Email)
		}
		return nil, err
	}
	return c, nil
}

func (r *postgresContactRepository) DeleteByID(ctx context.Context, id string) error {
	q := "DELETE FROM contacts WHERE id = $1"
	comm, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return err
	}

	if comm.RowsAffected() == 0 {
		return apperrors.NewEntryNotFoundErr(ContactNotFoundMsg)
	}
	return nil
}

func (r *postgresContactRepository) scanRow(row pgx.Row) (*model.Contact, error) {
	var c model.Contact
	var company, jobTitle pgtype.Text

	if err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &company, &jobTitle); err != nil {
		return nil, err
	}

	if company.Status == pgtype.Present {
		c.Company = company.String
	}

	if jobTitle.Status == pgtype.Present {
		c.JobTitle = jobTitle.String
	}
	return &c, nil
}

func (r *postgresContactRepository) isEmailViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgUniqueViolationCode && pgErr.ConstraintName == pgEmailUniqueConstraint
}
