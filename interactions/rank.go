/*
 * rank.go, part of chemassist.
 *
 *
 * Copyright 2019 Tom Mason <tommason14@gmail.com>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package interactions

import (
	"encoding/csv"
	"os"
	"sort"
	"strconv"
	"strings"

	chem "github.com/tmason/chemassist"
)

//Some ions go by more than one directory name.
var ionSynonyms = map[string]string{
	"ch":       "choline",
	"ac":       "acetate",
	"h2po4":    "dhp",
	"mesylate": "mes",
}

//AssignIons labels a configuration with the cation and anion named in its
//path segments, after synonym remapping. Unmatched labels stay empty.
func AssignIons(c *Config) {
	for _, seg := range strings.Split(c.Path, "/") {
		if canonical, ok := ionSynonyms[seg]; ok {
			seg = canonical
		}
		switch {
		case chem.IsCation(seg):
			c.Cation = seg
		case chem.IsAnion(seg):
			c.Anion = seg
		}
	}
}

//Rank orders the whole batch: configurations are labeled, grouped into
//cation-anion families, sorted within each family by correlated total
//energy ascending, given ranks from 1, and given their energy gap to the
//family minimum. Grouping strictly precedes ranking and ranking strictly
//precedes the gap computation. The returned slice is ordered by family
//(cation, then anion, alphabetically) and by rank within it.
func Rank(configs []*Config) []*Config {
	for _, c := range configs {
		AssignIons(c)
	}
	families := make(map[[2]string][]*Config)
	for _, c := range configs {
		key := [2]string{c.Cation, c.Anion}
		families[key] = append(families[key], c)
	}
	keys := make([][2]string, 0, len(families))
	for key := range families {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})
	ranked := make([]*Config, 0, len(configs))
	for _, key := range keys {
		family := families[key]
		sort.Slice(family, func(i, j int) bool { return family[i].TotalMP2 < family[j].TotalMP2 })
		min := family[0].TotalMP2
		for i, c := range family {
			c.Rank = i + 1
			c.DeltaE = c.TotalMP2 - min
		}
		ranked = append(ranked, family...)
	}
	return ranked
}

var mixedColumns = []string{
	"Path", "Cation", "Anion",
	"Elec Int_HF [kJ/mol]", "Elec Int_MP2 [kJ/mol]",
	"Disp Int_HF [kJ/mol]", "Disp Int_MP2 [kJ/mol]",
	"Total Int_HF [kJ/mol]", "Total Int_MP2 [kJ/mol]",
	"Dispersion [kJ/mol]", "% Electrostatics",
	"Rank", "ΔE [kJ/mol]",
}

var ionicColumns = []string{
	"Path", "Cation", "Anion",
	"Total Int_HF [kJ/mol]", "Total Int_MP2 [kJ/mol]",
	"Dispersion [kJ/mol]", "% Electrostatics",
	"Rank", "ΔE [kJ/mol]",
}

//WriteCSV writes the ranked table, with a UTF-8 byte order mark so
//spreadsheet programs read the unicode column names. Purely ionic batches
//carry only the combined totals.
func WriteCSV(filename string, ranked []*Config, purelyIonic bool) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteString("\ufeff"); err != nil {
		return err
	}
	w := csv.NewWriter(f)
	cols := mixedColumns
	if purelyIonic {
		cols = ionicColumns
	}
	if err := w.Write(cols); err != nil {
		return err
	}
	for _, c := range ranked {
		row := []string{c.Path, c.Cation, c.Anion}
		if !purelyIonic {
			row = append(row, num(c.ElecHF), num(c.ElecMP2), num(c.DispHF), num(c.DispMP2))
		}
		row = append(row,
			num(c.TotalHF), num(c.TotalMP2), num(c.Dispersion), num(c.Electro),
			strconv.Itoa(c.Rank), num(c.DeltaE))
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
