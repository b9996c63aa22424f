package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func collect(f Filas) []FilaImport {
	var out []FilaImport
	for fila := range f.All() {
		out = append(out, fila)
	}
	return out
}

func TestParseCSV_ProjectsHeaderColumns(t *testing.T) {
	filas := ParseCSV("nombre_grupo,segmento,temporada,miembros\nGrupo A,Jóvenes,2025,Ana Gómez|Líder; Juan Pérez")

	require.Equal(t, 1, filas.Len())
	rows := collect(filas)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, 2, row.Numero, "First data row is row 2")
	assert.Equal(t, "Grupo A", *row.NombreGrupo)
	assert.Equal(t, "Jóvenes", *row.Segmento)
	assert.Equal(t, "2025", *row.Temporada)
	assert.Equal(t, "Ana Gómez|Líder; Juan Pérez", *row.Miembros)
}

func TestParseCSV_HeaderIsCaseInsensitiveAndReordered(t *testing.T) {
	filas := ParseCSV(" TEMPORADA , Segmento,NOMBRE_GRUPO\r\n2025,Adultos,Grupo B\r\n")

	rows := collect(filas)
	require.Len(t, rows, 1)
	assert.Equal(t, "Grupo B", *rows[0].NombreGrupo)
	assert.Equal(t, "Adultos", *rows[0].Segmento)
	assert.Equal(t, "2025", *rows[0].Temporada)
	assert.Nil(t, rows[0].Miembros, "Missing header column stays undefined")
}

func TestParseCSV_SkipsBlankLines(t *testing.T) {
	filas := ParseCSV("\n\nnombre_grupo,segmento,temporada,miembros\n\nA,S,T,\n   \nB,S,T,\n")

	rows := collect(filas)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Numero)
	assert.Equal(t, 3, rows[1].Numero)
	assert.Equal(t, "B", *rows[1].NombreGrupo)
	assert.Equal(t, "", *rows[1].Miembros)
}

func TestParseCSV_LineEndings(t *testing.T) {
	testCases := []struct {
		name string
		text string
	}{
		{"lf", "nombre_grupo,segmento\nA,Jóvenes\nB,Adultos\n"},
		{"crlf", "nombre_grupo,segmento\r\nA,Jóvenes\r\nB,Adultos\r\n"},
		{"cr only", "nombre_grupo,segmento\rA,Jóvenes\rB,Adultos\r"},
		{"mixed", "nombre_grupo,segmento\r\nA,Jóvenes\rB,Adultos\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rows := collect(ParseCSV(tc.text))
			require.Len(t, rows, 2)
			assert.Equal(t, "A", *rows[0].NombreGrupo)
			assert.Equal(t, "Jóvenes", *rows[0].Segmento)
			assert.Equal(t, 3, rows[1].Numero)
			assert.Equal(t, "Adultos", *rows[1].Segmento)
		})
	}
}

func TestParseCSV_ShortLineLeavesFieldsUndefined(t *testing.T) {
	rows := collect(ParseCSV("nombre_grupo,segmento,temporada,miembros\nSolo"))
	require.Len(t, rows, 1)
	assert.Equal(t, "Solo", *rows[0].NombreGrupo)
	assert.Nil(t, rows[0].Segmento)
	assert.Nil(t, rows[0].Temporada)
	assert.Nil(t, rows[0].Miembros)
}

func TestParseCSV_EmbeddedCommaShiftsColumns(t *testing.T) {
	rows := collect(ParseCSV("nombre_grupo,segmento,temporada\nGrupo, A,Jóvenes,2025"))
	require.Len(t, rows, 1)
	assert.Equal(t, "Grupo", *rows[0].NombreGrupo)
	assert.Equal(t, "A", *rows[0].Segmento)
	assert.Equal(t, "Jóvenes", *rows[0].Temporada)
}

func TestParseCSV_Empty(t *testing.T) {
	testCases := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace", "  \n \n"},
		{"header only", "nombre_grupo,segmento,temporada,miembros\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			filas := ParseCSV(tc.text)
			assert.Equal(t, 0, filas.Len())
			assert.Empty(t, collect(filas))
		})
	}
}

func TestFilas_AllIsRestartable(t *testing.T) {
	filas := ParseCSV("nombre_grupo\nA\nB\nC")

	first := collect(filas)
	second := collect(filas)
	assert.Equal(t, first, second)
	assert.Len(t, second, 3)

	// early break must not disturb later iterations
	for range filas.All() {
		break
	}
	assert.Len(t, collect(filas), 3)
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Nombre_Grupo", "Segmento", "Temporada", "Miembros"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Grupo A", "Jóvenes", "2025", "Ana Gómez|Líder, Juan Pérez"}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]interface{}{"Grupo B", "Adultos", "2025"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	filas, err := ParseXLSX(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	rows := collect(filas)
	require.Len(t, rows, 2, "Blank spreadsheet rows are discarded")
	assert.Equal(t, "Ana Gómez|Líder, Juan Pérez", *rows[0].Miembros, "Cells may contain commas")
	assert.Equal(t, 3, rows[1].Numero)
	assert.Equal(t, "Grupo B", *rows[1].NombreGrupo)
	assert.Nil(t, rows[1].Miembros)
}

func TestParseXLSX_InvalidFile(t *testing.T) {
	_, err := ParseXLSX(bytes.NewReader([]byte("not a workbook")))
	assert.Error(t, err)
}
