// Package catalog stores and retrieves named model documents (the JSON wire
// format) in Postgres, keyed by name and version. This is deliberately
// distinct from walk-state persistence: a walk's Profile, Context variables,
// RNG position, and Machine status are never written here — only the
// immutable input document a Machine is later loaded from. Uses sql.OpenDB +
// pgdriver.NewConnector, bun.NewDB(pgdialect.New()), bun.BaseModel table
// structs, and InitSchema via NewCreateTable().IfNotExists().
package catalog

import (
	"bytes"
	"context"
	"database/sql"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/graphwalker/graphwalker-go/internal/domain"
	"github.com/graphwalker/graphwalker-go/internal/modelio"
)

// Catalog is a Postgres-backed store of model documents.
type Catalog struct {
	db *bun.DB
}

// documentRow is the bun table model for one stored model document.
type documentRow struct {
	bun.BaseModel `bun:"table:model_documents,alias:d"`

	Name      string    `bun:"name,pk"`
	Version   string    `bun:"version,pk"`
	Document  []byte    `bun:"document,type:jsonb"`
	CreatedAt time.Time `bun:"created_at"`
}

// Open connects to Postgres via dsn and returns a Catalog ready for
// InitSchema.
func Open(dsn string) *Catalog {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	return &Catalog{db: db}
}

// InitSchema creates the model_documents table if it does not already
// exist.
func (c *Catalog) InitSchema(ctx context.Context) error {
	_, err := c.db.NewCreateTable().Model((*documentRow)(nil)).IfNotExists().Exec(ctx)
	return err
}

// Put stores set's JSON wire form under (name, version), replacing any
// existing document with the same key.
func (c *Catalog) Put(ctx context.Context, name, version string, set *domain.ModelSet) error {
	var buf bytes.Buffer
	if err := modelio.WriteJSON(&buf, set); err != nil {
		return err
	}

	row := &documentRow{Name: name, Version: version, Document: buf.Bytes(), CreatedAt: time.Now()}
	_, err := c.db.NewInsert().Model(row).
		On("CONFLICT (name, version) DO UPDATE").
		Set("document = EXCLUDED.document").
		Exec(ctx)
	return err
}

// Get loads and parses the model document stored under (name, version).
func (c *Catalog) Get(ctx context.Context, name, version string) (*domain.ModelSet, error) {
	row := new(documentRow)
	if err := c.db.NewSelect().Model(row).Where("name = ? AND version = ?", name, version).Scan(ctx); err != nil {
		return nil, domain.NewEngineError(domain.ErrLoad, "model document not found in catalog", err)
	}
	return modelio.ReadJSON(row.Document)
}
