// Package csvfile implementa el almacenamiento tabular plano del diario:
// un CSV por dataset, con las cabeceras localizadas que escribía la app
// original (son parte del contrato en disco). Cada escritura es
// leer-modificar-reescribir el archivo completo, con file lock para que dos
// procesos no intercalen escrituras.
package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// ErrCorrupt: el archivo existe pero no se puede interpretar con la forma
// esperada. Se corta antes de escribir nada; un dataset corrupto nunca se
// pisa con una reescritura.
var ErrCorrupt = errors.New("dataset corrupt")

type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("csvfile: dir required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("csvfile: create dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

type Table struct {
	Header []string
	Rows   [][]string
}

func (s *Store) path(dataset string) string {
	return filepath.Join(s.dir, dataset+".csv")
}

func (s *Store) fileLock(dataset string) *flock.Flock {
	return flock.New(s.path(dataset) + ".lock")
}

// Load devuelve todas las filas del dataset. Archivo inexistente = tabla
// vacía: ese es el estado "sin datos todavía", nunca un error.
func (s *Store) Load(dataset string, header []string) (Table, error) {
	f, err := os.Open(s.path(dataset))
	if err != nil {
		if os.IsNotExist(err) {
			return Table{Header: header}, nil
		}
		return Table{}, fmt.Errorf("csvfile: open %s: %w", dataset, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("%w: %s: %v", ErrCorrupt, dataset, err)
	}
	if len(records) == 0 {
		return Table{Header: header}, nil
	}

	if !equalHeader(records[0], header) {
		return Table{}, fmt.Errorf("%w: %s: unexpected header %v", ErrCorrupt, dataset, records[0])
	}
	for i, row := range records[1:] {
		if len(row) != len(header) {
			return Table{}, fmt.Errorf("%w: %s: row %d has %d columns, want %d",
				ErrCorrupt, dataset, i+1, len(row), len(header))
		}
	}

	return Table{Header: records[0], Rows: records[1:]}, nil
}

// Append agrega filas al final y persiste la tabla completa.
func (s *Store) Append(dataset string, header []string, rows [][]string) error {
	lock := s.fileLock(dataset)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("csvfile: lock %s: %w", dataset, err)
	}
	defer lock.Unlock()

	t, err := s.Load(dataset, header)
	if err != nil {
		return err
	}
	t.Rows = append(t.Rows, rows...)
	return s.write(dataset, t)
}

// Replace elimina las filas para las que drop devuelve true y agrega rows
// en su lugar, persistiendo la tabla completa. Es la base de "guardar
// cambios": reemplazo total del set, no update por fila.
func (s *Store) Replace(dataset string, header []string, drop func(row []string) bool, rows [][]string) error {
	lock := s.fileLock(dataset)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("csvfile: lock %s: %w", dataset, err)
	}
	defer lock.Unlock()

	t, err := s.Load(dataset, header)
	if err != nil {
		return err
	}

	kept := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		if !drop(row) {
			kept = append(kept, row)
		}
	}
	t.Rows = append(kept, rows...)
	return s.write(dataset, t)
}

// write escribe a un archivo temporal y renombra, para no dejar un CSV a
// medio escribir si el proceso muere en el medio.
func (s *Store) write(dataset string, t Table) error {
	tmp, err := os.CreateTemp(s.dir, dataset+".*.tmp")
	if err != nil {
		return fmt.Errorf("csvfile: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(t.Header); err != nil {
		tmp.Close()
		return fmt.Errorf("csvfile: write header: %w", err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		tmp.Close()
		return fmt.Errorf("csvfile: write rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("csvfile: flush: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("csvfile: close temp: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path(dataset)); err != nil {
		return fmt.Errorf("csvfile: rename: %w", err)
	}
	return nil
}

func equalHeader(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
