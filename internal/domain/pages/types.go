package pages

// Category identifica cada página de registro del diario.
// Reemplaza el dispatch por strings de display del original: cada página
// es una variante explícita con su propio set de campos tipados.
type Category string

const (
	CategoryBasicInfo Category = "basic_info"
	CategoryHandprint Category = "handprint"
	CategoryMilestone Category = "milestone"
	CategoryBirthday  Category = "birthday"
	CategoryMemo      Category = "memo"
)

// AllCategories en el orden de las páginas del diario.
func AllCategories() []Category {
	return []Category{
		CategoryBasicInfo,
		CategoryHandprint,
		CategoryMilestone,
		CategoryBirthday,
		CategoryMemo,
	}
}

func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryBasicInfo, CategoryHandprint, CategoryMilestone, CategoryBirthday, CategoryMemo:
		return Category(s), true
	default:
		return "", false
	}
}
