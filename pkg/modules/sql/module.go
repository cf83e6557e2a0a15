package sql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/gigabytetmn/freeradius-server/pkg/config"
	"github.com/gigabytetmn/freeradius-server/pkg/mapproc"
	"github.com/gigabytetmn/freeradius-server/pkg/radius"
	"github.com/gigabytetmn/freeradius-server/pkg/xlat"
)

// ProcName is the name the module registers under.
const ProcName = "sql"

// Module owns the database handle shared by every sql map instance. It is
// the owner handle passed through the registry to the callbacks.
type Module struct {
	db           *sql.DB
	queryTimeout time.Duration
	logger       *slog.Logger
}

// New opens the database and returns the module. The DSN is a SQLite file
// path, optionally with driver parameters.
func New(cfg config.SQLModuleConfig) (*Module, error) {
	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("sql module: failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxOpenConns)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sql module: database unreachable: %w", err)
	}

	m := &Module{
		db:           db,
		queryTimeout: cfg.QueryTimeout,
		logger:       slog.Default().With("component", "modules.sql"),
	}

	m.logger.Info("sql module initialized", "dsn", cfg.DSN, "max_open_conns", cfg.MaxOpenConns)

	return m, nil
}

// Register registers the "sql" map processor.
func (m *Module) Register(reg *mapproc.Registry) (*mapproc.Registration, error) {
	return reg.Register(m, ProcName, mapproc.Definition{
		Evaluate:    evaluate,
		Escape:      Escape,
		Instantiate: instantiate,
		NewData:     func() any { return &instanceData{} },
	})
}

// Close releases the database handle.
func (m *Module) Close() error {
	return m.db.Close()
}

// QueryCount returns the number of queries an instance has executed. Used
// by tests and debug output.
func QueryCount(inst *mapproc.Instance) uint64 {
	if d, ok := inst.Data().(*instanceData); ok {
		return d.queries.Load()
	}
	return 0
}

// instanceData is the per-map-block state: the column names expected in the
// result set and a query counter.
type instanceData struct {
	columns []string
	queries atomic.Uint64
}

// instantiate validates the map list at compile time: every entry must name
// a result column.
func instantiate(data, owner any, src *xlat.Template, maps []*radius.Map) error {
	d := data.(*instanceData)

	for i, mp := range maps {
		if mp.Src == "" {
			return fmt.Errorf("map entry %d (%s): a result column name is required", i, mp.Dst)
		}
		d.columns = append(d.columns, mp.Src)
	}

	return nil
}

// evaluate runs the expanded query and applies the first row to the map
// list.
func evaluate(owner, data any, req *radius.Request, query string, maps []*radius.Map) radius.Rcode {
	m := owner.(*Module)
	d := data.(*instanceData)

	ctx, cancel := context.WithTimeout(req.Context(), m.queryTimeout)
	defer cancel()

	d.queries.Add(1)

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		m.logger.Error("query failed", "request_id", req.ID, "error", err)
		return radius.RcodeFail
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			m.logger.Error("query failed", "request_id", req.ID, "error", err)
			return radius.RcodeFail
		}
		return radius.RcodeNotfound
	}

	cols, err := rows.Columns()
	if err != nil {
		m.logger.Error("failed to read result columns", "request_id", req.ID, "error", err)
		return radius.RcodeFail
	}

	values := make([]sql.NullString, len(cols))
	scan := make([]any, len(cols))
	for i := range values {
		scan[i] = &values[i]
	}
	if err := rows.Scan(scan...); err != nil {
		m.logger.Error("failed to scan result row", "request_id", req.ID, "error", err)
		return radius.RcodeFail
	}

	byName := make(map[string]sql.NullString, len(cols))
	for i, col := range cols {
		byName[col] = values[i]
	}

	applied := 0
	for _, mp := range maps {
		value, ok := byName[mp.Src]
		if !ok {
			m.logger.Warn("result has no such column, skipping map",
				"request_id", req.ID, "column", mp.Src)
			continue
		}
		if !value.Valid {
			continue
		}
		mp.Apply(req, value.String)
		applied++
	}

	if applied == 0 {
		return radius.RcodeNoop
	}
	return radius.RcodeUpdated
}
