package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetBylogin(ctx context.Context, login string) (int, string, error)

	SaveRun(ctx context.Context, userID int, run Run) (int, error)
	ListRuns(ctx context.Context, userID, limit int) ([]Run, error)
	GetRun(ctx context.Context, userID, id int) (Run, error)
	DeleteRun(ctx context.Context, userID, id int) error
}

// Run is one saved sizing call: the full result document plus the columns
// history listings are shown by.
type Run struct {
	ID              int             `json:"id"`
	Refrigerant     string          `json:"refrigerant"`
	LineType        string          `json:"line_type"`
	SelectedNominal string          `json:"selected_nominal"`
	CreatedAt       time.Time       `json:"created_at"`
	Result          json.RawMessage `json:"result"`
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresDB(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

func (r *PostgresRepository) GetBylogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *PostgresRepository) SaveRun(ctx context.Context, userID int, run Run) (int, error) {
	var id int
	query := `INSERT INTO sizing_runs (user_id, refrigerant, line_type, selected_nominal, result)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, userID, run.Refrigerant, run.LineType, run.SelectedNominal, []byte(run.Result)).Scan(&id)
	return id, err
}

func (r *PostgresRepository) ListRuns(ctx context.Context, userID, limit int) ([]Run, error) {
	query := `SELECT id, refrigerant, line_type, selected_nominal, created_at, result FROM sizing_runs
		WHERE user_id=$1 ORDER BY created_at DESC, id DESC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var result []byte
		if err := rows.Scan(&run.ID, &run.Refrigerant, &run.LineType, &run.SelectedNominal, &run.CreatedAt, &result); err != nil {
			return nil, err
		}
		run.Result = json.RawMessage(result)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *PostgresRepository) GetRun(ctx context.Context, userID, id int) (Run, error) {
	query := `SELECT id, refrigerant, line_type, selected_nominal, created_at, result FROM sizing_runs
		WHERE id=$1 AND user_id=$2`
	var run Run
	var result []byte
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&run.ID, &run.Refrigerant, &run.LineType, &run.SelectedNominal, &run.CreatedAt, &result)
	if err != nil {
		return Run{}, err
	}
	run.Result = json.RawMessage(result)
	return run, nil
}

func (r *PostgresRepository) DeleteRun(ctx context.Context, userID, id int) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM sizing_runs WHERE id=$1 AND user_id=$2", id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
