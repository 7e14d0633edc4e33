package pages

import (
	"context"
	"strings"
	"time"
)

// BirthDateOf devuelve la fecha de nacimiento más reciente registrada en la
// página de información básica de la mascota. found=false cuando no hay
// registro: quien llama decide qué hacer (el diario de crecimiento lo
// convierte en un error explícito, nunca en edad cero).
// Vive acá para evitar ciclos de imports entre módulos.
func (s *Service) BirthDateOf(ctx context.Context, petName string) (birth time.Time, found bool, err error) {
	petName = strings.TrimSpace(petName)
	if petName == "" {
		return time.Time{}, false, ErrInvalidInput
	}

	recs, err := s.repo.ListByPet(ctx, petName, CategoryBasicInfo)
	if err != nil {
		return time.Time{}, false, err
	}

	// la fila más reciente gana (se puede re-guardar la página)
	for i := len(recs) - 1; i >= 0; i-- {
		if info, ok := recs[i].Fields.(BasicInfo); ok && !info.BirthDate.IsZero() {
			return info.BirthDate, true, nil
		}
	}
	return time.Time{}, false, nil
}
