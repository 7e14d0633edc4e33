package sessions

// Lang es el idioma activo de la sesión. Solo se guarda la preferencia;
// las tablas de traducción son cosa de la UI, no de este servicio.
type Lang string

const (
	LangJapanese Lang = "ja"
	LangEnglish  Lang = "en"
)

func ParseLang(s string) (Lang, bool) {
	switch s {
	case string(LangJapanese), "":
		return LangJapanese, true
	case string(LangEnglish):
		return LangEnglish, true
	default:
		return "", false
	}
}

// Page identifica la página activa del diario.
type Page string

const (
	PagePhotos      Page = "photos"
	PageBasicInfo   Page = "basic_info"
	PageHandprint   Page = "handprint"
	PageMilestones  Page = "milestones"
	PageGrowthGuide Page = "growth_guide"
	PageBirthday    Page = "birthday"
	PageGrowthDiary Page = "growth_diary"
	PageNotes       Page = "notes"
	PageHealthLog   Page = "health_log"
)

func ParsePage(s string) (Page, bool) {
	switch Page(s) {
	case PagePhotos, PageBasicInfo, PageHandprint, PageMilestones,
		PageGrowthGuide, PageBirthday, PageGrowthDiary, PageNotes, PageHealthLog:
		return Page(s), true
	default:
		return "", false
	}
}
