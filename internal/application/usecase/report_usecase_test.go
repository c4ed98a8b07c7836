package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pukassein/teysa/internal/application/usecase"
)

// Horario de planta: lunes a viernes, 07:00–12:00 y 13:00–17:30.

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		t.Fatalf("fecha de prueba inválida %q: %v", value, err)
	}
	return parsed
}

func TestWorkingHours_DentroDeUnBloque(t *testing.T) {
	// Lunes 2023-10-23, 08:00 a 11:00: tres horas de la mañana.
	got := usecase.WorkingHours(day(t, "2023-10-23 08:00"), day(t, "2023-10-23 11:00"))
	assert.InDelta(t, 3.0, got, 1e-9)
}

func TestWorkingHours_ExcluyeAlmuerzo(t *testing.T) {
	// 08:00 a 14:00 cruza el descanso 12:00–13:00: 4 + 1 = 5 horas.
	got := usecase.WorkingHours(day(t, "2023-10-23 08:00"), day(t, "2023-10-23 14:00"))
	assert.InDelta(t, 5.0, got, 1e-9)
}

func TestWorkingHours_DiaCompleto(t *testing.T) {
	// 07:00 a 17:30: 5 de la mañana + 4.5 de la tarde.
	got := usecase.WorkingHours(day(t, "2023-10-23 07:00"), day(t, "2023-10-23 17:30"))
	assert.InDelta(t, 9.5, got, 1e-9)
}

func TestWorkingHours_FueraDeHorario(t *testing.T) {
	// 18:00 a 22:00 del mismo día: cero horas hábiles.
	got := usecase.WorkingHours(day(t, "2023-10-23 18:00"), day(t, "2023-10-23 22:00"))
	assert.Zero(t, got)
}

func TestWorkingHours_SaltaFinDeSemana(t *testing.T) {
	// Viernes 2023-10-27 16:00 a lunes 2023-10-30 08:00:
	// 1.5 horas del viernes + 1 hora del lunes; sábado y domingo no cuentan.
	got := usecase.WorkingHours(day(t, "2023-10-27 16:00"), day(t, "2023-10-30 08:00"))
	assert.InDelta(t, 2.5, got, 1e-9)
}

func TestWorkingHours_VariosDias(t *testing.T) {
	// Lunes 09:00 a miércoles 10:00: lunes 09:00–12:00 y 13:00–17:30 = 7.5;
	// martes completo = 9.5; miércoles 07:00–10:00 = 3. Total 20.
	got := usecase.WorkingHours(day(t, "2023-10-23 09:00"), day(t, "2023-10-25 10:00"))
	assert.InDelta(t, 20.0, got, 1e-9)
}

func TestWorkingHours_RangoInvertido(t *testing.T) {
	got := usecase.WorkingHours(day(t, "2023-10-23 11:00"), day(t, "2023-10-23 08:00"))
	assert.Zero(t, got)
}
