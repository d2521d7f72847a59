// Package schema declares the journal tables as data and compiles them to
// CREATE TABLE statements for each supported dialect.
package schema

import (
	"fmt"
	"regexp"
	"strings"
)

type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

type ColumnType int

const (
	// Serial is an engine-assigned integer primary key
	Serial ColumnType = iota
	Integer
	Text
	Real
)

type Column struct {
	Name    string
	Type    ColumnType
	NotNull bool
	Unique  bool
	// Default is a SQL literal, e.g. `''` or `0`
	Default string
}

type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
}

type Table struct {
	Name        string
	Columns     []Column
	ForeignKeys []ForeignKey
}

// PrimaryKey returns the name of the Serial column, or "" when there is none
func (t Table) PrimaryKey() string {
	for _, c := range t.Columns {
		if c.Type == Serial {
			return c.Name
		}
	}
	return ""
}

var identifier = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func (d Dialect) columnType(t ColumnType) (string, error) {
	switch d {
	case SQLite:
		switch t {
		case Serial:
			return "INTEGER PRIMARY KEY AUTOINCREMENT", nil
		case Integer:
			return "INTEGER", nil
		case Text:
			return "TEXT", nil
		case Real:
			return "REAL", nil
		}
	case Postgres:
		switch t {
		case Serial:
			return "BIGSERIAL PRIMARY KEY", nil
		case Integer:
			return "BIGINT", nil
		case Text:
			return "TEXT", nil
		case Real:
			return "DOUBLE PRECISION", nil
		}
	default:
		return "", fmt.Errorf("unknown dialect %q", string(d))
	}
	return "", fmt.Errorf("unknown column type %d", t)
}

// Compile renders an idempotent CREATE TABLE statement for the dialect
func Compile(t Table, d Dialect) (string, error) {
	if !identifier.MatchString(t.Name) {
		return "", fmt.Errorf("invalid table name %q", t.Name)
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("table %s has no columns", t.Name)
	}

	seen := make(map[string]bool, len(t.Columns))
	serials := 0
	defs := make([]string, 0, len(t.Columns)+len(t.ForeignKeys))

	for _, c := range t.Columns {
		if !identifier.MatchString(c.Name) {
			return "", fmt.Errorf("invalid column name %q in table %s", c.Name, t.Name)
		}
		if seen[c.Name] {
			return "", fmt.Errorf("duplicate column %s in table %s", c.Name, t.Name)
		}
		seen[c.Name] = true

		typ, err := d.columnType(c.Type)
		if err != nil {
			return "", err
		}

		def := c.Name + " " + typ
		if c.Type == Serial {
			serials++
		} else {
			if c.NotNull {
				def += " NOT NULL"
			}
			if c.Unique {
				def += " UNIQUE"
			}
			if c.Default != "" {
				def += " DEFAULT " + c.Default
			}
		}
		defs = append(defs, def)
	}

	if serials > 1 {
		return "", fmt.Errorf("table %s declares %d serial columns", t.Name, serials)
	}

	for _, fk := range t.ForeignKeys {
		if !seen[fk.Column] {
			return "", fmt.Errorf("foreign key on unknown column %s in table %s", fk.Column, t.Name)
		}
		if !identifier.MatchString(fk.RefTable) || !identifier.MatchString(fk.RefColumn) {
			return "", fmt.Errorf("invalid foreign key reference %s(%s)", fk.RefTable, fk.RefColumn)
		}
		defs = append(defs, fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s (%s)", fk.Column, fk.RefTable, fk.RefColumn))
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", t.Name, strings.Join(defs, ",\n\t")), nil
}
