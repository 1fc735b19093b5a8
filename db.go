package ehex

import (
	"crypto/sha1"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a catalog entry does not exist.
var ErrNotFound = errors.New("ehex: image not found in catalog")

// Catalog is a SQLite database of named EHEX images.
type Catalog struct {
	db *sql.DB
}

// Entry describes one catalogued image.
type Entry struct {
	ID     int64
	Name   string
	SHA1   string
	Format string
	Width  int
	Height int
}

// OpenCatalog opens or creates the catalog database in file.
func OpenCatalog(file string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS image (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, sha1 TEXT NOT NULL, format TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, body BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE INDEX IF NOT EXISTS image_sha1 ON image (sha1)"); err != nil {
		db.Close()
		return nil, err
	}

	return &Catalog{
		db: db,
	}, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

// Add stores body under name, replacing any image already stored under
// that name. body must decode as an image of either generation.
func (c *Catalog) Add(name string, body []byte) (*Entry, error) {
	m, format, err := Decode(body)
	if err != nil {
		return nil, err
	}
	return c.put(name, body, format, m.Width(), m.Height())
}

func (c *Catalog) put(name string, body []byte, format string, width, height int) (*Entry, error) {
	e := &Entry{
		Name:   name,
		SHA1:   fmt.Sprintf("%X", sha1.Sum(body)),
		Format: format,
		Width:  width,
		Height: height,
	}

	var sha string
	switch err := c.db.QueryRow("SELECT id, sha1 FROM image WHERE name = ?", name).Scan(&e.ID, &sha); err {
	case sql.ErrNoRows:
		result, err := c.db.Exec("INSERT INTO image (name, sha1, format, width, height, body) VALUES (?, ?, ?, ?, ?, ?)", name, e.SHA1, format, width, height, body)
		if err != nil {
			return nil, err
		}
		if e.ID, err = result.LastInsertId(); err != nil {
			return nil, err
		}
		return e, nil
	case nil:
		if sha == e.SHA1 {
			return e, nil
		}
		if _, err := c.db.Exec("UPDATE image SET sha1 = ?, format = ?, width = ?, height = ?, body = ? WHERE id = ?", e.SHA1, format, width, height, body, e.ID); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, err
	}
}

func (c *Catalog) Get(name string) ([]byte, error) {
	var body []byte
	switch err := c.db.QueryRow("SELECT body FROM image WHERE name = ?", name).Scan(&body); err {
	case sql.ErrNoRows:
		return nil, ErrNotFound
	case nil:
		return body, nil
	default:
		return nil, err
	}
}

// FindBySHA1 returns the names of all images with the given content hash.
func (c *Catalog) FindBySHA1(sha string) ([]string, error) {
	rows, err := c.db.Query("SELECT name FROM image WHERE sha1 = ? ORDER BY name", sha)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// List returns every entry ordered by name.
func (c *Catalog) List() ([]Entry, error) {
	rows, err := c.db.Query("SELECT id, name, sha1, format, width, height FROM image ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Name, &e.SHA1, &e.Format, &e.Width, &e.Height); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (c *Catalog) Remove(name string) error {
	result, err := c.db.Exec("DELETE FROM image WHERE name = ?", name)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
