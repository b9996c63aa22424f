package service

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/global-ministries/global-connect-sub001/internal/domain"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var separadorMiembros = regexp.MustCompile(`\s*[;,]\s*`)

// TokenMiembro is one entry of a "Nombre Apellido|Rol" member list.
type TokenMiembro struct {
	NombreCompleto string
	RolTexto       string
	Nombre         string
	Apellido       string
	Rol            domain.RolGrupo
}

// ParseMiembros decodes a member cell. Entries are separated by ';' or ','
// and may carry a role after the first '|'. Entries with an empty name are
// dropped.
func ParseMiembros(raw string) []TokenMiembro {
	var tokens []TokenMiembro
	for _, entrada := range separadorMiembros.Split(raw, -1) {
		entrada = strings.TrimSpace(entrada)
		if entrada == "" {
			continue
		}

		nombreCompleto, rolTexto, _ := strings.Cut(entrada, "|")
		nombreCompleto = strings.Join(strings.Fields(nombreCompleto), " ")
		if nombreCompleto == "" {
			continue
		}

		nombre, apellido := DividirNombre(nombreCompleto)
		tokens = append(tokens, TokenMiembro{
			NombreCompleto: nombreCompleto,
			RolTexto:       strings.TrimSpace(rolTexto),
			Nombre:         nombre,
			Apellido:       apellido,
			Rol:            RolDesdeTexto(rolTexto),
		})
	}
	return tokens
}

// DividirNombre takes the last word as the family name and the rest as the
// given name. A single word is kept as the given name.
func DividirNombre(nombreCompleto string) (nombre, apellido string) {
	partes := strings.Fields(nombreCompleto)
	switch len(partes) {
	case 0:
		return "", ""
	case 1:
		return partes[0], ""
	}
	return strings.Join(partes[:len(partes)-1], " "), partes[len(partes)-1]
}

// RolDesdeTexto maps role text starting with "lider" (ignoring case and
// accents) to Líder; everything else, including empty text, is Miembro.
func RolDesdeTexto(texto string) domain.RolGrupo {
	if strings.HasPrefix(plegar(texto), "lider") {
		return domain.RolGrupoLider
	}
	return domain.RolGrupoMiembro
}

// plegar lower-cases s and strips combining diacritics.
func plegar(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}
