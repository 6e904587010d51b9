// Package i18n resolves dotted translation keys (e.g.
// "calendar.months.january") against per-language string tables.
// Lookup falls back to the default language and finally to the key
// itself, so a missing entry never breaks rendering.
package i18n

import "strings"

// DefaultLanguage is used when a key is missing from the requested
// language's table.
const DefaultLanguage = "en"

type table map[string]interface{}

var tables = map[string]table{
	"en": {
		"common": table{
			"loading": "Loading...",
			"cancel":  "Cancel",
			"save":    "Save",
		},
		"calendar": table{
			"months": table{
				"january": "January", "february": "February", "march": "March",
				"april": "April", "may": "May", "june": "June",
				"july": "July", "august": "August", "september": "September",
				"october": "October", "november": "November", "december": "December",
			},
			"weekdays": table{
				"sunday": "Sunday", "monday": "Monday", "tuesday": "Tuesday",
				"wednesday": "Wednesday", "thursday": "Thursday",
				"friday": "Friday", "saturday": "Saturday",
			},
		},
		"booking": table{
			"confirmed":         "Successfully registered!",
			"alreadyRegistered": "You are already registered for this event",
			"notEnoughSeats":    "Not enough seats available",
			"seatRange":         "You can book between 1 and 4 seats",
			"emailDelayed":      "Booking confirmed, email may be delayed",
		},
		"event": table{
			"unknown": "Unknown Event",
		},
	},
	"es": {
		"common": table{
			"loading": "Cargando...",
			"cancel":  "Cancelar",
			"save":    "Guardar",
		},
		"calendar": table{
			"months": table{
				"january": "Enero", "february": "Febrero", "march": "Marzo",
				"april": "Abril", "may": "Mayo", "june": "Junio",
				"july": "Julio", "august": "Agosto", "september": "Septiembre",
				"october": "Octubre", "november": "Noviembre", "december": "Diciembre",
			},
			"weekdays": table{
				"sunday": "Domingo", "monday": "Lunes", "tuesday": "Martes",
				"wednesday": "Miércoles", "thursday": "Jueves",
				"friday": "Viernes", "saturday": "Sábado",
			},
		},
		"booking": table{
			"confirmed":         "¡Registro exitoso!",
			"alreadyRegistered": "Ya estás registrado en este evento",
			"notEnoughSeats":    "No hay suficientes plazas disponibles",
			"seatRange":         "Puedes reservar entre 1 y 4 plazas",
			"emailDelayed":      "Reserva confirmada, el correo puede demorarse",
		},
		"event": table{
			"unknown": "Evento desconocido",
		},
	},
}

// T resolves a dotted key in the given language.  Missing keys fall
// back to DefaultLanguage; if still missing, the key itself is
// returned so callers always get something displayable.
func T(lang, key string) string {
	if s, ok := lookup(lang, key); ok {
		return s
	}
	if lang != DefaultLanguage {
		if s, ok := lookup(DefaultLanguage, key); ok {
			return s
		}
	}
	return key
}

func lookup(lang, key string) (string, bool) {
	t, ok := tables[lang]
	if !ok {
		return "", false
	}
	parts := strings.Split(key, ".")
	var cur interface{} = t
	for _, p := range parts {
		m, ok := cur.(table)
		if !ok {
			return "", false
		}
		cur, ok = m[p]
		if !ok {
			return "", false
		}
	}
	s, ok := cur.(string)
	return s, ok
}
