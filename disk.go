package ffsim

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fumin/tensor"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

const (
	tableHamiltonian = "hamiltonian"
	tableOneBody     = "one_body"
	tableTwoBody     = "two_body"
)

// Store persists named Hamiltonians in a sqlite database. Zero tensor
// elements are not stored.
type Store struct {
	Path string

	db *sql.DB
}

// OpenStore opens the database at dbPath, creating it if needed.
func OpenStore(dbPath string) (*Store, error) {
	s := &Store{Path: dbPath}
	var err error
	s.db, err = newDB(dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	return s, nil
}

// MustOpenStore is like OpenStore but panics on error.
func MustOpenStore(dbPath string) *Store {
	s, err := OpenStore(dbPath)
	if err != nil {
		panic(fmt.Sprintf("%+v", err))
	}
	return s
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes h under name, replacing any previous record of that
// name.
func (s *Store) Save(name string, h *MolecularHamiltonian) error {
	ctx, cancel := context.WithTimeout(context.Background(), 48*time.Hour)
	defer cancel()

	if err := s.deleteName(ctx, name); err != nil {
		return errors.Wrap(err, "")
	}

	sqlStr := fmt.Sprintf(`INSERT INTO %s (name, norb, re, im) VALUES (?, ?, ?, ?)`, tableHamiltonian)
	args := []any{name, h.norb, real(h.constant), imag(h.constant)}
	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return errors.Wrap(err, fmt.Sprintf("%s %#v", sqlStr, args))
	}

	for ijk, v := range h.oneBody.All() {
		if v == 0 {
			continue
		}
		sqlStr := fmt.Sprintf(`INSERT OR REPLACE INTO %s (name, p, q, re, im) VALUES (?, ?, ?, ?, ?)`, tableOneBody)
		if _, err := s.db.ExecContext(ctx, sqlStr, name, ijk[0], ijk[1], real(v), imag(v)); err != nil {
			return errors.Wrap(err, fmt.Sprintf("%s %#v", sqlStr, ijk))
		}
	}
	for ijk, v := range h.twoBody.All() {
		if v == 0 {
			continue
		}
		sqlStr := fmt.Sprintf(`INSERT OR REPLACE INTO %s (name, p, q, r, s, re, im) VALUES (?, ?, ?, ?, ?, ?, ?)`, tableTwoBody)
		if _, err := s.db.ExecContext(ctx, sqlStr, name, ijk[0], ijk[1], ijk[2], ijk[3], real(v), imag(v)); err != nil {
			return errors.Wrap(err, fmt.Sprintf("%s %#v", sqlStr, ijk))
		}
	}
	return nil
}

// Load reads the Hamiltonian stored under name.
func (s *Store) Load(name string) (*MolecularHamiltonian, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 48*time.Hour)
	defer cancel()

	sqlStr := fmt.Sprintf(`SELECT norb, re, im FROM %s WHERE name=?`, tableHamiltonian)
	var norb int
	var re, im float32
	if err := s.db.QueryRowContext(ctx, sqlStr, name).Scan(&norb, &re, &im); err != nil {
		return nil, errors.Wrap(err, name)
	}
	h := &MolecularHamiltonian{
		oneBody:  tensor.Zeros(norb, norb),
		twoBody:  tensor.Zeros(norb, norb, norb, norb),
		constant: complex(re, im),
		norb:     norb,
	}

	if err := s.loadOneBody(ctx, name, h.oneBody); err != nil {
		return nil, errors.Wrap(err, "")
	}
	if err := s.loadTwoBody(ctx, name, h.twoBody); err != nil {
		return nil, errors.Wrap(err, "")
	}
	return h, nil
}

func (s *Store) loadOneBody(ctx context.Context, name string, t *tensor.Dense) error {
	sqlStr := fmt.Sprintf(`SELECT p, q, re, im FROM %s WHERE name=? ORDER BY p, q`, tableOneBody)
	rows, err := s.db.QueryContext(ctx, sqlStr, name)
	if err != nil {
		return errors.Wrap(err, "")
	}
	defer rows.Close()
	for rows.Next() {
		var p, q int
		var re, im float32
		if err := rows.Scan(&p, &q, &re, &im); err != nil {
			return errors.Wrap(err, "")
		}
		t.SetAt([]int{p, q}, complex(re, im))
	}
	if err := rows.Err(); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}

func (s *Store) loadTwoBody(ctx context.Context, name string, t *tensor.Dense) error {
	sqlStr := fmt.Sprintf(`SELECT p, q, r, s, re, im FROM %s WHERE name=? ORDER BY p, q, r, s`, tableTwoBody)
	rows, err := s.db.QueryContext(ctx, sqlStr, name)
	if err != nil {
		return errors.Wrap(err, "")
	}
	defer rows.Close()
	for rows.Next() {
		var d [4]int
		var re, im float32
		if err := rows.Scan(&d[0], &d[1], &d[2], &d[3], &re, &im); err != nil {
			return errors.Wrap(err, "")
		}
		t.SetAt(d[:], complex(re, im))
	}
	if err := rows.Err(); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}

// Names lists the stored Hamiltonians.
func (s *Store) Names() ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	sqlStr := fmt.Sprintf(`SELECT name FROM %s ORDER BY name`, tableHamiltonian)
	rows, err := s.db.QueryContext(ctx, sqlStr)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, "")
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "")
	}
	return names, nil
}

// NumNonZero counts the tensor elements stored under name.
func (s *Store) NumNonZero(name string) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	var n int
	for _, table := range []string{tableOneBody, tableTwoBody} {
		sqlStr := fmt.Sprintf(`SELECT count(1) FROM %s WHERE name=?`, table)
		var k int
		if err := s.db.QueryRowContext(ctx, sqlStr, name).Scan(&k); err != nil {
			return -1, errors.Wrap(err, "")
		}
		n += k
	}
	return n, nil
}

func (s *Store) deleteName(ctx context.Context, name string) error {
	for _, table := range []string{tableHamiltonian, tableOneBody, tableTwoBody} {
		sqlStr := fmt.Sprintf(`DELETE FROM %s WHERE name=?`, table)
		if _, err := s.db.ExecContext(ctx, sqlStr, name); err != nil {
			return errors.Wrap(err, fmt.Sprintf("%s %s", sqlStr, name))
		}
	}
	return nil
}

func newDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s", dbPath))
	if err != nil {
		return nil, errors.Wrap(err, "")
	}

	if err := prepareDB(db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "")
	}

	return db, nil
}

func prepareDB(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	for _, sqlStr := range []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (name TEXT PRIMARY KEY, norb INTEGER, re REAL, im REAL) STRICT`, tableHamiltonian),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (name TEXT, p INTEGER, q INTEGER, re REAL, im REAL, PRIMARY KEY (name, p, q)) STRICT`, tableOneBody),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (name TEXT, p INTEGER, q INTEGER, r INTEGER, s INTEGER, re REAL, im REAL, PRIMARY KEY (name, p, q, r, s)) STRICT`, tableTwoBody),
	} {
		if _, err := db.ExecContext(ctx, sqlStr); err != nil {
			return errors.Wrap(err, sqlStr)
		}
	}
	return nil
}
