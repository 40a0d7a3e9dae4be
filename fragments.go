/*
 * fragments.go, part of chemassist.
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

package chem

import (
	"fmt"
	"os"
	"sort"
	"strconv"
)

//Fragment types. An ionic fragment is an inseparable network of charged
//species (e.g. a salt bridge); a frag is an independently separable neutral
//or charged unit.
const (
	FragTypeFrag  = "frag"
	FragTypeIonic = "ionic"
)

//Fragment is a named subset of a molecule's atoms with its own charge and
//multiplicity. Atoms holds 0-based indices into the parent molecule's atom
//slice, sorted ascending.
type Fragment struct {
	Name         string //species label plus ordinal, e.g. water0
	Species      string //species label alone, e.g. water
	Charge       int
	Multiplicity int
	Type         string //FragTypeFrag or FragTypeIonic
	Atoms        []int
}

//First returns the 1-based index of the fragment's first atom.
func (f *Fragment) First() int {
	if len(f.Atoms) == 0 {
		panic("Fragment with no atoms")
	}
	return f.Atoms[0] + 1
}

//Last returns the 1-based index of the fragment's last atom.
func (f *Fragment) Last() int {
	if len(f.Atoms) == 0 {
		panic("Fragment with no atoms")
	}
	return f.Atoms[len(f.Atoms)-1] + 1
}

//Formula returns the molecular formula of the atoms at the given indices,
//in Hill order: C first, H second, remaining elements alphabetical. H
//precedes everything else when no carbon is present, as the alphabetical
//rule then covers it.
func (M *Molecule) Formula(indices []int) string {
	counts := make(map[string]int)
	for _, i := range indices {
		counts[NormalizeSymbol(M.Atom(i).Symbol)]++
	}
	return formulaString(counts)
}

func formulaString(counts map[string]int) string {
	syms := make([]string, 0, len(counts))
	for s := range counts {
		if s != "C" && s != "H" {
			syms = append(syms, s)
		}
	}
	sort.Strings(syms)
	ordered := make([]string, 0, len(counts))
	if counts["C"] > 0 {
		ordered = append(ordered, "C", "H")
	} else if counts["H"] > 0 {
		//no carbon: everything alphabetical, H included
		syms = append(syms, "H")
		sort.Strings(syms)
	}
	ordered = append(ordered, syms...)
	ret := ""
	for _, s := range ordered {
		n := counts[s]
		if n == 0 {
			continue
		}
		if n == 1 {
			ret += s
		} else {
			ret += s + strconv.Itoa(n)
		}
	}
	return ret
}

//Separate partitions the molecule into connected chemical units using the
//distance-based bond heuristic, names each unit by matching its molecular
//formula against the known species table, and tags units as frag or ionic.
//A unit whose formula matches no single species but decomposes into two or
//more bonded charged species becomes part of the ionic network. hint, if
//positive, is the expected number of units; a mismatch, or an
//unclassifiable unit with no hint given, is a FragmentationError. The
//result is cached on the molecule.
func (M *Molecule) Separate(hint int) (map[string]*Fragment, error) {
	if M.fragments != nil {
		return M.fragments, nil
	}
	if err := AssignBonds(M); err != nil {
		return nil, errDecorate(err, "Separate")
	}
	units := M.connectedUnits()
	if hint > 0 && len(units) != hint {
		return nil, NewFragmentationError(fmt.Sprintf("Found %d chemical units but %d were requested", len(units), hint))
	}
	frags := make(map[string]*Fragment)
	var ionic *Fragment
	count := 0 //single counter across all fragments, so names never collide
	for _, unit := range units {
		formula := M.Formula(unit)
		if sp, ok := speciesByFormula[formula]; ok {
			name := sp.Name + strconv.Itoa(count)
			frags[name] = &Fragment{
				Name:         name,
				Species:      sp.Name,
				Charge:       sp.Charge,
				Multiplicity: sp.Multiplicity,
				Type:         FragTypeFrag,
				Atoms:        unit,
			}
			count++
			continue
		}
		//Not a single known species: maybe an inseparable network of
		//charged species (a salt bridge).
		members, ok := decomposeIonic(M, unit)
		if ok {
			if ionic == nil {
				ionic = &Fragment{Name: "ionic", Species: "ionic", Multiplicity: 1, Type: FragTypeIonic}
			}
			for _, m := range members {
				ionic.Charge += m.Charge
			}
			ionic.Atoms = append(ionic.Atoms, unit...)
			sort.Ints(ionic.Atoms)
			continue
		}
		if hint == 0 {
			return nil, NewFragmentationError(fmt.Sprintf("Cannot identify the chemical unit with formula %s; give an explicit fragment count to accept it", formula))
		}
		fmt.Fprintf(os.Stderr, "unit with formula %s not recognized, treated as a neutral fragment\n", formula)
		name := "frag" + strconv.Itoa(count)
		frags[name] = &Fragment{
			Name:         name,
			Species:      "frag",
			Charge:       0,
			Multiplicity: 1,
			Type:         FragTypeFrag,
			Atoms:        unit,
		}
		count++
	}
	if ionic != nil {
		frags[ionic.Name] = ionic
		M.ionic = ionic
	}
	M.fragments = frags
	return frags, nil
}

//connectedUnits returns the connected components of the bond graph, each a
//sorted slice of 0-based atom indices, ordered by their first atom.
func (M *Molecule) connectedUnits() [][]int {
	visited := make([]bool, M.Len())
	units := make([][]int, 0, 4)
	for i := 0; i < M.Len(); i++ {
		if visited[i] {
			continue
		}
		unit := make([]int, 0, 10)
		stack := []int{i}
		visited[i] = true
		for len(stack) > 0 {
			j := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			unit = append(unit, j)
			for _, b := range M.Atom(j).Bonds {
				next := b.Cross(M.Atom(j)).Index - 1 //Index is 1-based
				if !visited[next] {
					visited[next] = true
					stack = append(stack, next)
				}
			}
		}
		sort.Ints(unit)
		units = append(units, unit)
	}
	sort.Slice(units, func(a, b int) bool { return units[a][0] < units[b][0] })
	return units
}

//decomposeIonic tries to express the formula of the given atom set as a sum
//of two or more known charged species. Returns the species used and whether
//the decomposition succeeded.
func decomposeIonic(M *Molecule, unit []int) ([]Species, bool) {
	counts := make(map[string]int)
	for _, i := range unit {
		counts[NormalizeSymbol(M.Atom(i).Symbol)]++
	}
	charged := make([]string, 0, len(speciesByFormula))
	for f, sp := range speciesByFormula {
		if sp.Charge != 0 {
			charged = append(charged, f)
		}
	}
	sort.Strings(charged) //deterministic search order
	var members []Species
	var search func(remaining map[string]int, from int) bool
	search = func(remaining map[string]int, from int) bool {
		empty := true
		for _, n := range remaining {
			if n > 0 {
				empty = false
				break
			}
		}
		if empty {
			return len(members) >= 2
		}
		for k := from; k < len(charged); k++ {
			f := charged[k]
			sub, ok := subtractFormula(remaining, f)
			if !ok {
				continue
			}
			members = append(members, speciesByFormula[f])
			if search(sub, k) { //same species may repeat
				return true
			}
			members = members[:len(members)-1]
		}
		return false
	}
	if search(counts, 0) {
		return members, true
	}
	return nil, false
}

//subtractFormula removes the element counts of formula f from counts,
//returning the remainder, or false if f is not contained in counts.
func subtractFormula(counts map[string]int, f string) (map[string]int, bool) {
	fcounts := parseFormula(f)
	ret := make(map[string]int, len(counts))
	for k, v := range counts {
		ret[k] = v
	}
	for k, v := range fcounts {
		if ret[k] < v {
			return nil, false
		}
		ret[k] -= v
	}
	return ret, true
}

//parseFormula converts a Hill-order formula string back to element counts.
func parseFormula(f string) map[string]int {
	counts := make(map[string]int)
	i := 0
	for i < len(f) {
		j := i + 1
		for j < len(f) && f[j] >= 'a' && f[j] <= 'z' {
			j++
		}
		sym := f[i:j]
		k := j
		for k < len(f) && f[k] >= '0' && f[k] <= '9' {
			k++
		}
		n := 1
		if k > j {
			n, _ = strconv.Atoi(f[j:k])
		}
		counts[sym] += n
		i = k
	}
	return counts
}

//FMOMeta computes the INDAT and ICHARG blocks required by FMO
//calculations. Fragments are sorted by their starting atom index before
//serializing; the engine mis-assigns atoms otherwise, regardless of how the
//fragment map happens to iterate. Each INDAT entry is the triple
//"0,first,-last," (1-based): the leading 0 and the negated last index tell
//the engine this is a simple contiguous range rather than a discontiguous
//atom list. A trailing sentinel "0" terminates the block. The charge list
//is parallel to the sorted fragment order. Fragments must occupy contiguous
//atom-index ranges and exactly cover the molecule.
func (M *Molecule) FMOMeta() (indat []string, icharg []string, err error) {
	if M.fragments == nil {
		return nil, nil, NewFragmentationError("FMO metadata requested before fragment separation")
	}
	frags := make([]*Fragment, 0, len(M.fragments))
	for _, f := range M.fragments {
		frags = append(frags, f)
	}
	sort.Slice(frags, func(i, j int) bool { return frags[i].First() < frags[j].First() })
	covered := 0
	for _, f := range frags {
		if f.Last()-f.First()+1 != len(f.Atoms) {
			return nil, nil, NewFragmentationError(fmt.Sprintf("Fragment %s does not occupy a contiguous atom range", f.Name))
		}
		if f.First() != covered+1 {
			return nil, nil, NewFragmentationError(fmt.Sprintf("Fragments do not partition the molecule: gap or overlap at atom %d", f.First()))
		}
		covered = f.Last()
		indat = append(indat, fmt.Sprintf("0,%d,-%d,", f.First(), f.Last()))
		icharg = append(icharg, strconv.Itoa(f.Charge))
	}
	if covered != M.Len() {
		return nil, nil, NewFragmentationError(fmt.Sprintf("Fragments cover %d of %d atoms", covered, M.Len()))
	}
	indat = append(indat, "0") //format terminator
	return indat, icharg, nil
}
