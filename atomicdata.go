/*
 * atomicdata.go, part of chemassist.
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

import "strings"

//A map for assigning atomic numbers to elements.
//Note that just the elements common in ionic-liquid and biological work
//are present.
var symbolAtnum = map[string]int{
	"H":  1,
	"Li": 3,
	"Be": 4,
	"B":  5,
	"C":  6,
	"N":  7,
	"O":  8,
	"F":  9,
	"Na": 11,
	"Mg": 12,
	"Si": 14,
	"P":  15,
	"S":  16,
	"Cl": 17,
	"K":  19,
	"Ca": 20,
	"Br": 35,
	"I":  53,
}

//A map for assigning mass to elements.
var symbolMass = map[string]float64{
	"H":  1.0,
	"Li": 6.94,
	"Be": 9.012,
	"B":  10.81,
	"C":  12.01,
	"N":  14.01,
	"O":  16.00,
	"F":  18.998,
	"Na": 22.99,
	"Mg": 24.30,
	"Si": 28.08,
	"P":  30.97,
	"S":  32.06,
	"Cl": 35.45,
	"K":  39.1,
	"Ca": 40.08,
	"Br": 79.904,
	"I":  126.90,
}

//A map for assigning covalent radii to elements.
//Values from Cordero et al., 2008 (DOI:10.1039/B801115J)
var symbolCovrad = map[string]float64{
	"H":  0.4, // 0.31 lengthened; H only ever has one bond so the extra bonds get eliminated later
	"Li": 1.28,
	"Be": 0.96,
	"B":  0.84,
	"C":  0.76, //the sp3 radius
	"N":  0.71,
	"O":  0.66,
	"F":  0.57,
	"Na": 1.66,
	"Mg": 1.41,
	"Si": 1.11,
	"P":  1.07,
	"S":  1.05,
	"Cl": 1.02,
	"K":  2.03,
	"Ca": 1.76,
	"Br": 1.2,
	"I":  1.39,
}

//A map for checking that atoms don't have too many bonds. A value of 0
//means undefined, i.e. that this atom shouldn't be checked for max bonds.
var symbolMaxBonds = map[string]int{
	"H":  1, //this is the only one truly important.
	"C":  4,
	"O":  2,
	"N":  0, //undefined
	"P":  0,
	"S":  0,
	"F":  1,
	"Cl": 1,
	"Br": 1,
	"I":  1,
}

//NormalizeSymbol returns the canonical capitalization of an element symbol
//("CL" or "cl" become "Cl").
func NormalizeSymbol(s string) string {
	if s == "" {
		return s
	}
	s = strings.ToLower(s)
	return strings.ToUpper(s[:1]) + s[1:]
}

//AtomicNumber returns the atomic number of the element with the given
//symbol, or 0 if the symbol is unknown.
func AtomicNumber(symbol string) int {
	return symbolAtnum[NormalizeSymbol(symbol)]
}

//Species describes a chemical species recognizable by its molecular
//formula: a name, net charge and spin multiplicity.
type Species struct {
	Name         string
	Charge       int
	Multiplicity int
}

//speciesByFormula maps a canonical molecular formula (Hill order: C first,
//H second, remaining elements alphabetical) to the species it identifies.
//This is how Separate names and charges the chemical units it finds.
var speciesByFormula = map[string]Species{
	"H2O":      {"water", 0, 1},
	"CH4O":     {"methanol", 0, 1},
	"C2H6O":    {"ethanol", 0, 1},
	"C6H6":     {"benzene", 0, 1},
	"CO2":      {"carbon_dioxide", 0, 1},
	"H3N":      {"ammonia", 0, 1},
	"C2H3O2":   {"acetate", -1, 1},
	"CH3O3S":   {"mes", -1, 1}, //mesylate
	"H2O4P":    {"dhp", -1, 1}, //dihydrogen phosphate
	"NO3":      {"nitrate", -1, 1},
	"Cl":       {"chloride", -1, 1},
	"Br":       {"bromide", -1, 1},
	"BF4":      {"tetrafluoroborate", -1, 1},
	"C5H14NO":  {"choline", 1, 1},
	"H4N":      {"ammonium", 1, 1},
	"Li":       {"lithium", 1, 1},
	"Na":       {"sodium", 1, 1},
	"K":        {"potassium", 1, 1},
	"C5H9N2":   {"c1mim", 1, 1},
	"C6H11N2":  {"c2mim", 1, 1},
	"C7H13N2":  {"c3mim", 1, 1},
	"C8H15N2":  {"c4mim", 1, 1},
	"C4H12N":   {"tetramethylammonium", 1, 1},
}

//Cations and Anions are the species names recognized as charged, and
//Neutrals the species names recognized as neutral. They are exported
//because the interaction-energy aggregation classifies jobs against them.
var (
	Cations = []string{"choline", "ammonium", "lithium", "sodium", "potassium",
		"c1mim", "c2mim", "c3mim", "c4mim", "tetramethylammonium"}
	Anions = []string{"acetate", "mes", "dhp", "nitrate", "chloride", "bromide",
		"tetrafluoroborate"}
	Neutrals = []string{"water", "methanol", "ethanol", "benzene",
		"carbon_dioxide", "ammonia"}
)

//IsCation reports whether name is a recognized cation.
func IsCation(name string) bool { return isInString(Cations, name) }

//IsAnion reports whether name is a recognized anion.
func IsAnion(name string) bool { return isInString(Anions, name) }

//IsNeutral reports whether name is a recognized neutral species.
func IsNeutral(name string) bool { return isInString(Neutrals, name) }

//isInString returns true if test is in container, false otherwise.
func isInString(container []string, test string) bool {
	if container == nil {
		return false
	}
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}
