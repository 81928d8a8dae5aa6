package ir

import "fmt"

// Grid is the pivot of one measurement type: rows are categories, columns are
// implementations. A nil cell means no record exists for that pair.
type Grid struct {
	MeasurementType string       `json:"measurement_type"`
	Categories      []string     `json:"categories"`
	Implementations []string     `json:"implementations"`
	Values          [][]*float64 `json:"values"`

	rowIndex map[string]int
	colIndex map[string]int
}

// NewGrid allocates an empty grid with the given ordered rows and columns.
func NewGrid(measurementType string, categories, implementations []string) *Grid {
	g := &Grid{
		MeasurementType: measurementType,
		Categories:      append([]string(nil), categories...),
		Implementations: append([]string(nil), implementations...),
		Values:          make([][]*float64, len(categories)),
		rowIndex:        make(map[string]int, len(categories)),
		colIndex:        make(map[string]int, len(implementations)),
	}
	for i, c := range g.Categories {
		g.rowIndex[c] = i
		g.Values[i] = make([]*float64, len(implementations))
	}
	for j, impl := range g.Implementations {
		g.colIndex[impl] = j
	}
	return g
}

// Set stores v at (category, implementation). It reports false when either
// tag is not part of the grid; the grid is left unchanged in that case.
func (g *Grid) Set(category, implementation string, v float64) bool {
	i, ok := g.rowIndex[category]
	if !ok {
		return false
	}
	j, ok := g.colIndex[implementation]
	if !ok {
		return false
	}
	g.Values[i][j] = &v
	return true
}

// Cell returns the value at (category, implementation) and whether it is present.
func (g *Grid) Cell(category, implementation string) (float64, bool) {
	i, ok := g.rowIndex[category]
	if !ok {
		return 0, false
	}
	j, ok := g.colIndex[implementation]
	if !ok {
		return 0, false
	}
	return g.At(i, j)
}

// At returns the cell at row i, column j.
func (g *Grid) At(i, j int) (float64, bool) {
	if i < 0 || i >= len(g.Values) || j < 0 || j >= len(g.Values[i]) {
		return 0, false
	}
	if p := g.Values[i][j]; p != nil {
		return *p, true
	}
	return 0, false
}

// Present counts the populated cells.
func (g *Grid) Present() int {
	n := 0
	for _, row := range g.Values {
		for _, v := range row {
			if v != nil {
				n++
			}
		}
	}
	return n
}

// Complete reports whether every cell is populated.
func (g *Grid) Complete() bool {
	return g.Present() == len(g.Categories)*len(g.Implementations)
}

// PresentRange returns the smallest and largest strictly positive values.
// ok is false when no positive value exists (nothing can be drawn on a log axis).
func (g *Grid) PresentRange() (lo, hi float64, ok bool) {
	for _, row := range g.Values {
		for _, v := range row {
			if v == nil || *v <= 0 {
				continue
			}
			if !ok {
				lo, hi, ok = *v, *v, true
				continue
			}
			lo = min(lo, *v)
			hi = max(hi, *v)
		}
	}
	return lo, hi, ok
}

// Column returns the values of one implementation in row order.
func (g *Grid) Column(j int) []*float64 {
	col := make([]*float64, len(g.Values))
	for i, row := range g.Values {
		col[i] = row[j]
	}
	return col
}

func (g *Grid) String() string {
	return fmt.Sprintf("%s: %d×%d grid, %d present", g.MeasurementType,
		len(g.Categories), len(g.Implementations), g.Present())
}

// canonicalMap converts the grid to plain values for canonical JSON.
func (g *Grid) canonicalMap() map[string]any {
	cats := make([]any, len(g.Categories))
	for i, c := range g.Categories {
		cats[i] = c
	}
	impls := make([]any, len(g.Implementations))
	for i, impl := range g.Implementations {
		impls[i] = impl
	}
	rows := make([]any, len(g.Values))
	for i, row := range g.Values {
		cells := make([]any, len(row))
		for j, v := range row {
			if v != nil {
				cells[j] = *v
			}
		}
		rows[i] = cells
	}
	return map[string]any{
		"measurement_type": g.MeasurementType,
		"categories":       cats,
		"implementations":  impls,
		"values":           rows,
	}
}
