package csvfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pet-growth-diary/internal/domain/pages"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore error: %v", err)
	}
	return s
}

func TestStore_Load_MissingFileIsEmptyTable(t *testing.T) {
	s := newTestStore(t)

	header := []string{"a", "b"}
	table, err := s.Load("nothing", header)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(table.Rows) != 0 {
		t.Fatalf("expected empty table, got %d rows", len(table.Rows))
	}
}

func TestStore_AppendThenLoad_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	header := []string{"名前", "メモ"}

	if err := s.Append("memo", header, [][]string{{"Pochi", "first"}}); err != nil {
		t.Fatalf("Append #1 error: %v", err)
	}
	if err := s.Append("memo", header, [][]string{{"Pochi", "second"}}); err != nil {
		t.Fatalf("Append #2 error: %v", err)
	}

	table, err := s.Load("memo", header)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if table.Rows[1][1] != "second" {
		t.Fatalf("expected appended row preserved in order, got %v", table.Rows)
	}
}

func TestStore_Load_HeaderMismatchIsCorrupt(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore error: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "memo.csv"), []byte("x,y\n1,2\n"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	_, err = s.Load("memo", []string{"名前", "メモ"})
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

func TestStore_Append_CorruptFileIsNotOverwritten(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore error: %v", err)
	}

	path := filepath.Join(dir, "memo.csv")
	seed := []byte("bad header\n\"unterminated\n")
	if err := os.WriteFile(path, seed, 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	err = s.Append("memo", []string{"名前", "メモ"}, [][]string{{"Pochi", "x"}})
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}

	// el archivo corrupto queda intacto para inspección manual
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != string(seed) {
		t.Fatalf("corrupt file was rewritten")
	}
}

func TestStore_Replace_DropsMatchingRowsOnly(t *testing.T) {
	s := newTestStore(t)
	header := []string{"名前", "メモ"}

	if err := s.Append("memo", header, [][]string{
		{"Pochi", "old"},
		{"Tama", "keep"},
	}); err != nil {
		t.Fatalf("Append error: %v", err)
	}

	drop := func(row []string) bool { return row[0] == "Pochi" }
	if err := s.Replace("memo", header, drop, [][]string{{"Pochi", "new"}}); err != nil {
		t.Fatalf("Replace error: %v", err)
	}

	table, err := s.Load("memo", header)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows after replace, got %d", len(table.Rows))
	}
	if table.Rows[0][0] != "Tama" || table.Rows[0][1] != "keep" {
		t.Fatalf("expected Tama row kept first, got %v", table.Rows)
	}
	if table.Rows[1][1] != "new" {
		t.Fatalf("expected replacement row appended, got %v", table.Rows)
	}
}

func TestStore_Replace_Twice_SameResult(t *testing.T) {
	s := newTestStore(t)
	header := []string{"名前", "メモ"}

	if err := s.Append("memo", header, [][]string{
		{"Pochi", "old"},
		{"Tama", "keep"},
	}); err != nil {
		t.Fatalf("Append error: %v", err)
	}

	drop := func(row []string) bool { return row[0] == "Pochi" }
	rows := [][]string{{"Pochi", "new"}}

	// reemplazar dos veces con las mismas filas deja la tabla igual
	for i := 0; i < 2; i++ {
		if err := s.Replace("memo", header, drop, rows); err != nil {
			t.Fatalf("Replace #%d error: %v", i+1, err)
		}
	}

	table, err := s.Load("memo", header)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows after repeated replace, got %d: %v", len(table.Rows), table.Rows)
	}
	if table.Rows[0][0] != "Tama" || table.Rows[1][1] != "new" {
		t.Fatalf("unexpected table after repeated replace: %v", table.Rows)
	}
}

func TestPagesRepo_ReplaceCategory_Twice_SameResult(t *testing.T) {
	s := newTestStore(t)
	repo := NewPagesRepo(s)
	ctx := context.Background()

	d := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)
	if err := repo.Append(ctx, []pages.Record{
		{PetName: "Pochi", Category: pages.CategoryMemo, Fields: pages.Memo{Date: d, Text: "old"}},
	}); err != nil {
		t.Fatalf("Append error: %v", err)
	}

	edited := []pages.Record{
		{PetName: "Pochi", Category: pages.CategoryMemo, Fields: pages.Memo{Date: d, Text: "edited"}},
	}
	for i := 0; i < 2; i++ {
		if err := repo.ReplaceCategory(ctx, "Pochi", pages.CategoryMemo, edited); err != nil {
			t.Fatalf("ReplaceCategory #%d error: %v", i+1, err)
		}
	}

	recs, err := repo.ListByPet(ctx, "Pochi", pages.CategoryMemo)
	if err != nil {
		t.Fatalf("ListByPet error: %v", err)
	}
	if len(recs) != 1 || recs[0].Fields.(pages.Memo).Text != "edited" {
		t.Fatalf("expected single edited row after repeated replace, got %#v", recs)
	}
}

func TestPagesRepo_ReplaceCategory_ScopedToPet(t *testing.T) {
	s := newTestStore(t)
	repo := NewPagesRepo(s)
	ctx := context.Background()

	d := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)
	seed := []pages.Record{
		{PetName: "Pochi", Category: pages.CategoryMemo, Fields: pages.Memo{Date: d, Text: "pochi memo"}},
		{PetName: "Tama", Category: pages.CategoryMemo, Fields: pages.Memo{Date: d, Text: "tama memo"}},
	}
	if err := repo.Append(ctx, seed); err != nil {
		t.Fatalf("Append error: %v", err)
	}

	edited := []pages.Record{
		{PetName: "Pochi", Category: pages.CategoryMemo, Fields: pages.Memo{Date: d, Text: "pochi edited"}},
	}
	if err := repo.ReplaceCategory(ctx, "Pochi", pages.CategoryMemo, edited); err != nil {
		t.Fatalf("ReplaceCategory error: %v", err)
	}

	tama, err := repo.ListByPet(ctx, "Tama", pages.CategoryMemo)
	if err != nil {
		t.Fatalf("ListByPet Tama error: %v", err)
	}
	if len(tama) != 1 || tama[0].Fields.(pages.Memo).Text != "tama memo" {
		t.Fatalf("expected Tama rows untouched, got %#v", tama)
	}

	pochi, err := repo.ListByPet(ctx, "Pochi", pages.CategoryMemo)
	if err != nil {
		t.Fatalf("ListByPet Pochi error: %v", err)
	}
	if len(pochi) != 1 || pochi[0].Fields.(pages.Memo).Text != "pochi edited" {
		t.Fatalf("expected Pochi rows replaced, got %#v", pochi)
	}
}

func TestPagesRepo_Milestone_WeekdayDerivedOnRead(t *testing.T) {
	s := newTestStore(t)
	repo := NewPagesRepo(s)
	ctx := context.Background()

	// fila con un 曜日 guardado que no corresponde a la fecha: al leer se
	// recalcula del campo fecha y el valor en disco se ignora
	header := pageDatasets[pages.CategoryMilestone].header
	if err := s.Append("milestones", header, [][]string{
		{"Pochi", "初めてできたこと", "2024-02-14", "Monday", "first steps"},
	}); err != nil {
		t.Fatalf("seed error: %v", err)
	}

	recs, err := repo.ListByPet(ctx, "Pochi", pages.CategoryMilestone)
	if err != nil {
		t.Fatalf("ListByPet error: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	m := recs[0].Fields.(pages.Milestone)
	if m.Weekday() != "Wednesday" {
		t.Fatalf("expected weekday derived from date (Wednesday), got %s", m.Weekday())
	}
}

func TestPagesRepo_BasicInfo_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	repo := NewPagesRepo(s)
	ctx := context.Background()

	rec := pages.Record{
		PetName:  "Pochi",
		Category: pages.CategoryBasicInfo,
		Fields: pages.BasicInfo{
			BirthDate:   time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			BirthTime:   "08:30",
			BirthPlace:  "Tokyo",
			Weather:     "sunny",
			BirthWeight: "300g",
			BirthHeight: "12cm",
			Message:     "welcome",
		},
	}
	if err := repo.Append(ctx, []pages.Record{rec}); err != nil {
		t.Fatalf("Append error: %v", err)
	}

	recs, err := repo.ListByPet(ctx, "Pochi", pages.CategoryBasicInfo)
	if err != nil {
		t.Fatalf("ListByPet error: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	got := recs[0].Fields.(pages.BasicInfo)
	want := rec.Fields.(pages.BasicInfo)
	if !got.BirthDate.Equal(want.BirthDate) || got.BirthTime != want.BirthTime ||
		got.BirthPlace != want.BirthPlace || got.Message != want.Message {
		t.Fatalf("round trip mismatch: got %#v want %#v", got, want)
	}
}
