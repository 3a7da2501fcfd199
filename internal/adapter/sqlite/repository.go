package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/neomorfeo/leadflow/internal/domain"

	_ "modernc.org/sqlite" // Register SQLite driver.
)

//go:embed migrations/*.sql
var migrations embed.FS

// LeadRepository implements domain.LeadRepository and domain.AuditLog using SQLite.
type LeadRepository struct {
	db *sql.DB
}

var (
	_ domain.LeadRepository = (*LeadRepository)(nil)
	_ domain.AuditLog       = (*LeadRepository)(nil)
)

// New opens a SQLite database, runs migrations, and returns a ready repository.
func New(dataSourceName string) (*LeadRepository, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// A single connection keeps ":memory:" databases shared and avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	// Enable foreign keys (off by default in SQLite).
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	return NewFromDB(db)
}

// NewFromDB wraps an existing database connection, runs migrations, and returns a ready repository.
// Use this when the *sql.DB has been pre-configured (e.g., with otelsql instrumentation).
func NewFromDB(db *sql.DB) (*LeadRepository, error) {
	if err := runMigrations(db); err != nil {
		return nil, err
	}

	return &LeadRepository{db: db}, nil
}

// Close closes the underlying database connection.
func (r *LeadRepository) Close() error {
	return r.db.Close()
}

// DB returns the underlying database connection for use by other adapters (e.g., river).
func (r *LeadRepository) DB() *sql.DB {
	return r.db
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}

const timeFormat = "2006-01-02T15:04:05Z"

const leadColumns = `id, customer_name, customer_email, customer_phone, source, move_date,
	status, activity, next_action, survey_date, survey_time, estimator,
	hide_next_action_after_survey, version, created_at, updated_at`

func (r *LeadRepository) Create(ctx context.Context, l domain.Lead) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO leads (`+leadColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.Contact.Name, l.Contact.Email, l.Contact.Phone, l.Contact.Source, l.Contact.MoveDate,
		string(l.Status), string(l.Activity), l.NextAction.String(),
		l.Survey.Date, l.Survey.Time, l.Survey.Estimator,
		l.HideNextActionAfterSurvey, l.Version,
		l.CreatedAt.Format(timeFormat),
		l.UpdatedAt.Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("inserting lead: %w", err)
	}
	return nil
}

func (r *LeadRepository) GetByID(ctx context.Context, id string) (domain.Lead, error) {
	l, err := scanLead(r.db.QueryRowContext(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Lead{}, domain.ErrLeadNotFound
	}
	return l, err
}

func (r *LeadRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads`
	var args []any

	if filter.Status != nil {
		query += ` WHERE status = ?`
		args = append(args, string(*filter.Status))
	}

	query += ` ORDER BY created_at DESC, id`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	} else if filter.Offset > 0 {
		// SQLite requires a LIMIT clause before OFFSET.
		query += ` LIMIT -1`
	}

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing leads: %w", err)
	}
	defer rows.Close()

	var leads []domain.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}

	return leads, rows.Err()
}

// Update writes the lead only if the stored version equals l.Version.
func (r *LeadRepository) Update(ctx context.Context, l domain.Lead) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE leads SET customer_name = ?, customer_email = ?, customer_phone = ?, source = ?, move_date = ?,
		 status = ?, activity = ?, next_action = ?, survey_date = ?, survey_time = ?, estimator = ?,
		 hide_next_action_after_survey = ?, version = version + 1, updated_at = ?
		 WHERE id = ? AND version = ?`,
		l.Contact.Name, l.Contact.Email, l.Contact.Phone, l.Contact.Source, l.Contact.MoveDate,
		string(l.Status), string(l.Activity), l.NextAction.String(),
		l.Survey.Date, l.Survey.Time, l.Survey.Estimator,
		l.HideNextActionAfterSurvey,
		time.Now().UTC().Format(timeFormat), l.ID, l.Version,
	)
	if err != nil {
		return fmt.Errorf("updating lead: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows > 0 {
		return nil
	}

	var actual int
	err = r.db.QueryRowContext(ctx, `SELECT version FROM leads WHERE id = ?`, l.ID).Scan(&actual)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrLeadNotFound
	}
	if err != nil {
		return fmt.Errorf("reading lead version: %w", err)
	}
	return &domain.VersionConflictError{LeadID: l.ID, Expected: l.Version, Actual: actual}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (domain.Lead, error) {
	var l domain.Lead
	var status, activity, nextAction, createdAt, updatedAt string

	err := row.Scan(
		&l.ID, &l.Contact.Name, &l.Contact.Email, &l.Contact.Phone, &l.Contact.Source, &l.Contact.MoveDate,
		&status, &activity, &nextAction, &l.Survey.Date, &l.Survey.Time, &l.Survey.Estimator,
		&l.HideNextActionAfterSurvey, &l.Version, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Lead{}, err
		}
		return domain.Lead{}, fmt.Errorf("scanning lead: %w", err)
	}

	l.Status = domain.Status(status)
	l.Activity = domain.Activity(activity)
	l.NextAction = domain.ParseNextAction(nextAction)
	l.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	l.UpdatedAt, _ = time.Parse(timeFormat, updatedAt)

	return l, nil
}
