package csvfile

import (
	"context"
	"fmt"
	"time"

	"pet-growth-diary/internal/domain/pages"
)

const dateLayout = "2006-01-02"

// Las cabeceras y las etiquetas de la columna ページ son las que escribía
// la app original: contrato en disco, no se traducen.
var pageDatasets = map[pages.Category]struct {
	dataset string
	label   string // valor de la columna ページ
	header  []string
}{
	pages.CategoryBasicInfo: {
		dataset: "basic_info",
		label:   "基本事項",
		header:  []string{"名前", "ページ", "生まれた日", "生まれた時間", "場所", "天気", "体重", "身長", "メッセージ"},
	},
	pages.CategoryHandprint: {
		dataset: "handprint",
		label:   "手形",
		header:  []string{"名前", "ページ", "日付", "コメント"},
	},
	pages.CategoryMilestone: {
		dataset: "milestones",
		label:   "初めてできたこと",
		header:  []string{"名前", "ページ", "日付", "曜日", "できたこと"},
	},
	pages.CategoryBirthday: {
		dataset: "birthday",
		label:   "誕生日メッセージ",
		header:  []string{"名前", "ページ", "メッセージ"},
	},
	pages.CategoryMemo: {
		dataset: "memo_log",
		label:   "メモ欄",
		header:  []string{"名前", "ページ", "日付", "メモ"},
	},
}

type PagesRepo struct {
	store *Store
}

func NewPagesRepo(store *Store) *PagesRepo {
	return &PagesRepo{store: store}
}

func (r *PagesRepo) ListByPet(ctx context.Context, petName string, cat pages.Category) ([]pages.Record, error) {
	all, err := r.ListAll(ctx, cat)
	if err != nil {
		return nil, err
	}

	out := make([]pages.Record, 0, len(all))
	for _, rec := range all {
		if rec.PetName == petName {
			out = append(out, rec)
		}
	}
	return out, nil
}

// ListAll devuelve las filas de la categoría para todas las mascotas.
// Lo usa la migración al almacenamiento embebido.
func (r *PagesRepo) ListAll(ctx context.Context, cat pages.Category) ([]pages.Record, error) {
	meta, ok := pageDatasets[cat]
	if !ok {
		return nil, fmt.Errorf("csvfile: unknown page category %q", cat)
	}

	t, err := r.store.Load(meta.dataset, meta.header)
	if err != nil {
		return nil, err
	}

	out := make([]pages.Record, 0, len(t.Rows))
	for i, row := range t.Rows {
		rec, err := decodePageRow(cat, row)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: row %d: %v", ErrCorrupt, meta.dataset, i+1, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *PagesRepo) Append(ctx context.Context, recs []pages.Record) error {
	// las filas se agrupan por dataset preservando el orden de llegada
	grouped := map[pages.Category][][]string{}
	for _, rec := range recs {
		meta, ok := pageDatasets[rec.Category]
		if !ok {
			return fmt.Errorf("csvfile: unknown page category %q", rec.Category)
		}
		grouped[rec.Category] = append(grouped[rec.Category], encodePageRow(meta.label, rec))
	}

	for cat, rows := range grouped {
		meta := pageDatasets[cat]
		if err := r.store.Append(meta.dataset, meta.header, rows); err != nil {
			return err
		}
	}
	return nil
}

func (r *PagesRepo) ReplaceCategory(ctx context.Context, petName string, cat pages.Category, recs []pages.Record) error {
	meta, ok := pageDatasets[cat]
	if !ok {
		return fmt.Errorf("csvfile: unknown page category %q", cat)
	}

	rows := make([][]string, 0, len(recs))
	for _, rec := range recs {
		if rec.Category != cat {
			return fmt.Errorf("csvfile: record category %q does not match %q", rec.Category, cat)
		}
		rows = append(rows, encodePageRow(meta.label, rec))
	}

	// acotado por (mascota, categoría): las filas de otras mascotas quedan
	drop := func(row []string) bool {
		return len(row) > 1 && row[0] == petName && row[1] == meta.label
	}
	return r.store.Replace(meta.dataset, meta.header, drop, rows)
}

func encodePageRow(label string, rec pages.Record) []string {
	switch v := rec.Fields.(type) {
	case pages.BasicInfo:
		return []string{
			rec.PetName, label,
			v.BirthDate.Format(dateLayout), v.BirthTime, v.BirthPlace,
			v.Weather, v.BirthWeight, v.BirthHeight, v.Message,
		}
	case pages.Handprint:
		return []string{rec.PetName, label, v.Date.Format(dateLayout), v.Comment}
	case pages.Milestone:
		// 曜日 se escribe por compatibilidad del archivo, siempre derivado
		// de la fecha; al leer se recalcula y el valor guardado se ignora.
		return []string{rec.PetName, label, v.Date.Format(dateLayout), v.Weekday(), v.Description}
	case pages.Birthday:
		return []string{rec.PetName, label, v.Message}
	case pages.Memo:
		return []string{rec.PetName, label, v.Date.Format(dateLayout), v.Text}
	default:
		return []string{rec.PetName, label}
	}
}

func decodePageRow(cat pages.Category, row []string) (pages.Record, error) {
	rec := pages.Record{PetName: row[0], Category: cat}

	switch cat {
	case pages.CategoryBasicInfo:
		bd, err := parseDate(row[2])
		if err != nil {
			return pages.Record{}, err
		}
		rec.Fields = pages.BasicInfo{
			BirthDate:   bd,
			BirthTime:   row[3],
			BirthPlace:  row[4],
			Weather:     row[5],
			BirthWeight: row[6],
			BirthHeight: row[7],
			Message:     row[8],
		}
	case pages.CategoryHandprint:
		d, err := parseDate(row[2])
		if err != nil {
			return pages.Record{}, err
		}
		rec.Fields = pages.Handprint{Date: d, Comment: row[3]}
	case pages.CategoryMilestone:
		d, err := parseDate(row[2])
		if err != nil {
			return pages.Record{}, err
		}
		rec.Fields = pages.Milestone{Date: d, Description: row[4]}
	case pages.CategoryBirthday:
		rec.Fields = pages.Birthday{Message: row[2]}
	case pages.CategoryMemo:
		d, err := parseDate(row[2])
		if err != nil {
			return pages.Record{}, err
		}
		rec.Fields = pages.Memo{Date: d, Text: row[3]}
	}

	return rec, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}
