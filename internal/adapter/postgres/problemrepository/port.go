package problemrepository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/domain"
	querybuilder "gitlab.com/codejudge.net/internal/utils"
)

var _ secondary.ProblemSource = (*ProblemRepository)(nil)

type problemRow struct {
	ID          string `db:"id"`
	Title       string `db:"title"`
	Description string `db:"description"`
	Params      []byte `db:"params"`
}

type testCaseRow struct {
	ProblemID      string `db:"problem_id"`
	Ordinal        int    `db:"ordinal"`
	Input          []byte `db:"input"`
	ExpectedOutput []byte `db:"expected_output"`
}

// ProblemRepository reads the problem catalog from PostgreSQL
type ProblemRepository struct {
	db     *sqlx.DB
	schema string
	logger primary.Logger
}

// NewProblemRepository creates a new PostgreSQL problem repository
func NewProblemRepository(db *sqlx.DB, schema string, logger primary.Logger) *ProblemRepository {
	if schema == "" {
		schema = "public"
	}
	return &ProblemRepository{
		db:     db,
		schema: schema,
		logger: logger,
	}
}

// LoadProblems returns every problem with its test cases, in catalog order
func (r *ProblemRepository) LoadProblems(ctx context.Context) ([]*domain.Problem, error) {
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select("id", "title", "description", "params").
		From("problems").
		OrderBy("position", true).
		OrderBy("id", true).
		Build()

	var rows []problemRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		r.logger.Error("Failed to load problems", "error", err)
		return nil, fmt.Errorf("failed to load problems: %w", err)
	}

	query, args = querybuilder.NewQueryBuilder(r.schema).
		Select("problem_id", "ordinal", "input", "expected_output").
		From("problem_test_cases").
		OrderBy("problem_id", true).
		OrderBy("ordinal", true).
		Build()

	var caseRows []testCaseRow
	if err := r.db.SelectContext(ctx, &caseRows, r.db.Rebind(query), args...); err != nil {
		r.logger.Error("Failed to load test cases", "error", err)
		return nil, fmt.Errorf("failed to load test cases: %w", err)
	}

	problems := make([]*domain.Problem, 0, len(rows))
	byID := make(map[string]*domain.Problem, len(rows))
	for _, row := range rows {
		p := &domain.Problem{
			ID:          row.ID,
			Title:       row.Title,
			Description: row.Description,
		}
		if len(row.Params) > 0 {
			if err := json.Unmarshal(row.Params, &p.Params); err != nil {
				return nil, fmt.Errorf("problem %s: invalid params: %w", row.ID, err)
			}
		}
		problems = append(problems, p)
		byID[p.ID] = p
	}

	for _, row := range caseRows {
		p, ok := byID[row.ProblemID]
		if !ok {
			r.logger.Warn("Skipping test case of unknown problem", "problemId", row.ProblemID, "ordinal", row.Ordinal)
			continue
		}
		tc := domain.TestCase{}
		if err := decodeJSON(row.Input, &tc.Input); err != nil {
			return nil, fmt.Errorf("problem %s case %d: invalid input: %w", row.ProblemID, row.Ordinal, err)
		}
		if err := decodeJSON(row.ExpectedOutput, &tc.ExpectedOutput); err != nil {
			return nil, fmt.Errorf("problem %s case %d: invalid expected output: %w", row.ProblemID, row.Ordinal, err)
		}
		p.TestCases = append(p.TestCases, tc)
	}

	r.logger.Info("Loaded problem catalog from database", "problems", len(problems), "testCases", len(caseRows))
	return problems, nil
}

// EnsureTables creates the catalog tables and seeds them with seed when the
// problems table is empty
func (r *ProblemRepository) EnsureTables(ctx context.Context, seed []*domain.Problem) error {
	statements := []string{
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.problems (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			params JSONB NOT NULL DEFAULT '[]',
			position INTEGER NOT NULL DEFAULT 0
		)`, r.schema),
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.problem_test_cases (
			problem_id TEXT NOT NULL REFERENCES %s.problems(id) ON DELETE CASCADE,
			ordinal INTEGER NOT NULL,
			input JSONB NOT NULL,
			expected_output JSONB,
			PRIMARY KEY (problem_id, ordinal)
		)`, r.schema, r.schema),
	}
	for _, stmt := range statements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			r.logger.Error("Failed to create catalog tables", "error", err)
			return fmt.Errorf("failed to create catalog tables: %w", err)
		}
	}

	var count int
	if err := r.db.GetContext(ctx, &count, fmt.Sprintf("SELECT COUNT(*) FROM %s.problems", r.schema)); err != nil {
		return fmt.Errorf("failed to count problems: %w", err)
	}
	if count > 0 || len(seed) == 0 {
		return nil
	}

	if err := r.seed(ctx, seed); err != nil {
		return err
	}
	r.logger.Info("Seeded problem catalog", "problems", len(seed))
	return nil
}

func (r *ProblemRepository) seed(ctx context.Context, problems []*domain.Problem) (err error) {
	problemQB := querybuilder.NewQueryBuilder(r.schema).
		Insert("id", "title", "description", "params", "position").
		Into("problems")
	caseQB := querybuilder.NewQueryBuilder(r.schema).
		Insert("problem_id", "ordinal", "input", "expected_output").
		Into("problem_test_cases")

	cases := 0
	for i, p := range problems {
		params, err := json.Marshal(p.Params)
		if err != nil {
			return fmt.Errorf("problem %s: %w", p.ID, err)
		}
		problemQB.Values(p.ID, p.Title, p.Description, string(params), i)

		for j, tc := range p.TestCases {
			input, err := json.Marshal(domain.JSONSafe(tc.Input))
			if err != nil {
				return fmt.Errorf("problem %s case %d: %w", p.ID, j, err)
			}
			expected, err := json.Marshal(domain.JSONSafe(tc.ExpectedOutput))
			if err != nil {
				return fmt.Errorf("problem %s case %d: %w", p.ID, j, err)
			}
			caseQB.Values(p.ID, j, string(input), string(expected))
			cases++
		}
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query, args := problemQB.OnConflict("id").DoNothing().Build()
	if _, err = tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to seed problems: %w", err)
	}
	if cases > 0 {
		query, args = caseQB.OnConflict("problem_id", "ordinal").DoNothing().Build()
		if _, err = tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return fmt.Errorf("failed to seed test cases: %w", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	return nil
}

func decodeJSON(data []byte, v interface{}) error {
	if len(data) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}
