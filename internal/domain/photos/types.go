package photos

// Slot identifica cada lugar de foto del diario. A lo sumo una imagen
// guardada por (mascota, slot); re-subir pisa la anterior.
type Slot string

const (
	SlotPhoto1    Slot = "photo1" // primera foto del nacimiento
	SlotPhoto2    Slot = "photo2" // segunda foto del nacimiento
	SlotHandprint Slot = "hand"   // foto de la huella
	SlotBirthday  Slot = "bday"   // foto del primer cumpleaños
)

func ParseSlot(s string) (Slot, bool) {
	switch Slot(s) {
	case SlotPhoto1, SlotPhoto2, SlotHandprint, SlotBirthday:
		return Slot(s), true
	default:
		return "", false
	}
}
