package grid

import (
	"fmt"
)

// Proportion weights one generator in the column mix.
type Proportion struct {
	Name   string  `yaml:"name"`
	Weight float64 `yaml:"weight"`
}

// cumulativeWeights keeps generators with a positive weight, in order, and
// returns their running weight totals normalized so the last equals 1.
func cumulativeWeights(props []Proportion) ([]string, []float64, error) {
	var names []string
	var cum []float64
	total := 0.0
	for _, p := range props {
		if p.Weight <= 0 {
			continue
		}
		total += p.Weight
		names = append(names, p.Name)
		cum = append(cum, total)
	}
	if len(names) == 0 {
		return nil, nil, fmt.Errorf("%w: %d proportions, none positive", ErrNoGenerators, len(props))
	}
	for i := range cum {
		cum[i] /= total
	}
	cum[len(cum)-1] = 1
	return names, cum, nil
}

// SelectColumn returns the index of the first cumulative weight above
// col/numTerrains. Any col in [0, numTerrains) resolves because the last weight is 1.
func SelectColumn(col, numTerrains int, cum []float64) int {
	x := float64(col) / float64(numTerrains)
	for k, c := range cum {
		if x < c {
			return k
		}
	}
	return len(cum) - 1
}

// Difficulty returns the difficulty of row on a linear ladder from 0 to 1.
func Difficulty(row, numLevels int) float64 {
	if numLevels <= 1 {
		return 0
	}
	return float64(row) / float64(numLevels-1)
}

// Columns resolves the generator name of every column.
func Columns(props []Proportion, numTerrains int) ([]string, error) {
	names, cum, err := cumulativeWeights(props)
	if err != nil {
		return nil, err
	}
	cols := make([]string, numTerrains)
	for c := range cols {
		cols[c] = names[SelectColumn(c, numTerrains, cum)]
	}
	return cols, nil
}
