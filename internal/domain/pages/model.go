package pages

import "time"

// Record es una fila de una página de registro. Fields lleva la variante
// tipada que corresponde a Category.
type Record struct {
	PetName  string
	Category Category
	Fields   Fields
}

// Fields es la unión sellada de variantes por categoría.
type Fields interface {
	Category() Category
}

// BasicInfo es la página de datos del nacimiento. Peso y altura se guardan
// como texto libre, igual que en el formulario original.
type BasicInfo struct {
	BirthDate   time.Time
	BirthTime   string // "HH:MM"
	BirthPlace  string
	Weather     string
	BirthWeight string
	BirthHeight string
	Message     string
}

func (BasicInfo) Category() Category { return CategoryBasicInfo }

type Handprint struct {
	Date    time.Time
	Comment string
}

func (Handprint) Category() Category { return CategoryHandprint }

type Milestone struct {
	Date        time.Time
	Description string
}

func (Milestone) Category() Category { return CategoryMilestone }

// Weekday se deriva siempre de Date; el valor persistido nunca se usa
// como fuente (puede haber divergido del dato original en disco).
func (m Milestone) Weekday() string {
	return m.Date.Weekday().String()
}

type Birthday struct {
	Message string
}

func (Birthday) Category() Category { return CategoryBirthday }

type Memo struct {
	Date time.Time
	Text string
}

func (Memo) Category() Category { return CategoryMemo }
