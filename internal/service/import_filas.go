package service

import (
	"fmt"
	"io"
	"iter"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

var saltoLinea = regexp.MustCompile(`\r\n|\r|\n`)

// Expected header columns of a group import file.
const (
	ColumnaNombreGrupo = "nombre_grupo"
	ColumnaSegmento    = "segmento"
	ColumnaTemporada   = "temporada"
	ColumnaMiembros    = "miembros"
)

// FilaImport is one data line of an import file. A nil field means the
// column was absent from the header or from the line itself.
type FilaImport struct {
	Numero      int
	NombreGrupo *string
	Segmento    *string
	Temporada   *string
	Miembros    *string
}

type columnas struct {
	nombreGrupo int
	segmento    int
	temporada   int
	miembros    int
}

// Filas is a finite sequence of import rows. Rows are projected from their
// source cells on every iteration, so All may be ranged over more than once.
type Filas struct {
	cols     columnas
	n        int
	registro func(i int) []string
}

// Len returns the number of data rows, excluding the header.
func (f Filas) Len() int {
	return f.n
}

// All yields rows in file order. The first data row is numbered 2.
func (f Filas) All() iter.Seq[FilaImport] {
	return func(yield func(FilaImport) bool) {
		for i := 0; i < f.n; i++ {
			celdas := f.registro(i)
			fila := FilaImport{
				Numero:      i + 2,
				NombreGrupo: celda(celdas, f.cols.nombreGrupo),
				Segmento:    celda(celdas, f.cols.segmento),
				Temporada:   celda(celdas, f.cols.temporada),
				Miembros:    celda(celdas, f.cols.miembros),
			}
			if !yield(fila) {
				return
			}
		}
	}
}

// ParseCSV splits text into lines (LF, CRLF or lone CR) and cells. Cells are separated by plain
// commas; quoting is not supported, so a comma inside a value shifts the
// remaining columns of that line.
func ParseCSV(text string) Filas {
	var lineas []string
	for _, l := range saltoLinea.Split(text, -1) {
		l = strings.TrimSpace(l)
		if l != "" {
			lineas = append(lineas, l)
		}
	}
	if len(lineas) == 0 {
		return Filas{}
	}

	datos := lineas[1:]
	return Filas{
		cols: indexarEncabezado(strings.Split(lineas[0], ",")),
		n:    len(datos),
		registro: func(i int) []string {
			return strings.Split(datos[i], ",")
		},
	}
}

// ParseXLSX reads the first sheet of a workbook with the same header rules
// as ParseCSV. Blank rows are discarded.
func ParseXLSX(r io.Reader) (Filas, error) {
	xlsx, err := excelize.OpenReader(r)
	if err != nil {
		return Filas{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer xlsx.Close()

	sheets := xlsx.GetSheetList()
	if len(sheets) == 0 {
		return Filas{}, nil
	}

	rows, err := xlsx.GetRows(sheets[0])
	if err != nil {
		return Filas{}, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}

	var registros [][]string
	for _, row := range rows {
		if !filaVacia(row) {
			registros = append(registros, row)
		}
	}
	if len(registros) == 0 {
		return Filas{}, nil
	}

	datos := registros[1:]
	return Filas{
		cols: indexarEncabezado(registros[0]),
		n:    len(datos),
		registro: func(i int) []string {
			return datos[i]
		},
	}, nil
}

func indexarEncabezado(encabezado []string) columnas {
	idx := make(map[string]int, len(encabezado))
	for i, c := range encabezado {
		c = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(c, "\ufeff")))
		if _, dup := idx[c]; !dup {
			idx[c] = i
		}
	}
	pos := func(nombre string) int {
		if i, ok := idx[nombre]; ok {
			return i
		}
		return -1
	}
	return columnas{
		nombreGrupo: pos(ColumnaNombreGrupo),
		segmento:    pos(ColumnaSegmento),
		temporada:   pos(ColumnaTemporada),
		miembros:    pos(ColumnaMiembros),
	}
}

func celda(celdas []string, i int) *string {
	if i < 0 || i >= len(celdas) {
		return nil
	}
	v := strings.TrimSpace(celdas[i])
	return &v
}

func filaVacia(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// valor dereferences an optional cell, treating absence as empty.
func valor(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
