/*
Package catalog implements a small SQLite database recording every CTE
texture found while scanning a directory tree.

Textures are keyed by path and carry an xxhash digest of the file contents so
that duplicates can be found across directories.
*/
package catalog

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/bodgit/cte"
	_ "github.com/mattn/go-sqlite3"
)

// Texture describes a single CTE file.
type Texture struct {
	Path   string
	Hash   uint64
	Format cte.Format
	Width  int
	Height int
}

// Catalog is the texture database.
type Catalog struct {
	db *sql.DB
}

func formatHash(hash uint64) string {
	return fmt.Sprintf("%016X", hash)
}

// New opens the catalog stored in file, creating it if necessary.
func New(file string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", file)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS texture (id INTEGER PRIMARY KEY NOT NULL, path TEXT NOT NULL UNIQUE, hash TEXT NOT NULL, format INTEGER NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE INDEX IF NOT EXISTS texture_hash ON texture (hash)"); err != nil {
		db.Close()
		return nil, err
	}

	return &Catalog{
		db: db,
	}, nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Add records t, replacing any existing texture with the same path, and
// returns its row id.
func (c *Catalog) Add(t Texture) (int64, error) {
	var id int64
	switch err := c.db.QueryRow("SELECT id FROM texture WHERE path = ?", t.Path).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := c.db.Exec("INSERT INTO texture (path, hash, format, width, height) VALUES (?, ?, ?, ?, ?)", t.Path, formatHash(t.Hash), uint32(t.Format), t.Width, t.Height)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		if _, err := c.db.Exec("UPDATE texture SET hash = ?, format = ?, width = ?, height = ? WHERE id = ?", formatHash(t.Hash), uint32(t.Format), t.Width, t.Height, id); err != nil {
			return 0, err
		}
		return id, nil
	default:
		return 0, err
	}
}

func (c *Catalog) query(query string, args ...interface{}) ([]Texture, error) {
	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var textures []Texture
	for rows.Next() {
		var (
			t      Texture
			hash   string
			format uint32
		)
		if err := rows.Scan(&t.Path, &hash, &format, &t.Width, &t.Height); err != nil {
			return nil, err
		}
		if t.Hash, err = strconv.ParseUint(hash, 16, 64); err != nil {
			return nil, err
		}
		t.Format = cte.Format(format)
		textures = append(textures, t)
	}

	return textures, rows.Err()
}

// FindByHash returns every texture whose contents hash to hash.
func (c *Catalog) FindByHash(hash uint64) ([]Texture, error) {
	return c.query("SELECT path, hash, format, width, height FROM texture WHERE hash = ? ORDER BY path", formatHash(hash))
}

// List returns every texture, ordered by path.
func (c *Catalog) List() ([]Texture, error) {
	return c.query("SELECT path, hash, format, width, height FROM texture ORDER BY path")
}
