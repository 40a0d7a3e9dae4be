/*
 * energies.go, part of chemassist.
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
	chem "github.com/tmason/chemassist"
)

//Config is the decomposed interaction energy of one configuration. All
//energies are in kJ/mol. For a purely ionic system (no separable neutral
//species) the dispersion components are zero and the totals equal the
//electrostatic ones.
type Config struct {
	Path        string
	Cation      string
	Anion       string
	ElecHF      float64
	ElecMP2     float64
	DispHF      float64
	DispMP2     float64
	TotalHF     float64
	TotalMP2    float64
	Dispersion  float64 //correlation share: TotalMP2 - TotalHF
	Electro     float64 //percent electrostatic: TotalHF/TotalMP2 x 100
	PurelyIonic bool
	Rank        int
	DeltaE      float64 //gap to the lowest-energy member of the family
}

//Decompose reduces one system's records to its interaction energy
//components:
//
//	elec = complex - sum(all separable fragments)
//	disp = complex - ionic network - sum(neutral fragments)
//
//with totals as their sum. The dispersion split needs both an ionic
//network and neutral species; without either the total is just the
//combined interaction energy, and with no neutral species at all the
//system is marked purely ionic.
func Decompose(path string, recs []*Record) *Config {
	var complexHF, complexMP2 float64
	var fragHF, fragMP2 float64
	var ionicHF, ionicMP2 float64
	var neuHF, neuMP2 float64
	neutrals := 0
	hasIonic := false
	for _, r := range recs {
		switch r.Role {
		case RoleComplex:
			complexHF = r.HF
			complexMP2 = r.MP2
		case RoleIonic:
			hasIonic = true
			ionicHF = r.HF
			ionicMP2 = r.MP2
		case RoleNeutral:
			neutrals++
			neuHF += r.HF
			neuMP2 += r.MP2
			fragHF += r.HF
			fragMP2 += r.MP2
		case RoleFragment:
			fragHF += r.HF
			fragMP2 += r.MP2
		}
	}
	c := &Config{
		Path:    path,
		ElecHF:  (complexHF - fragHF) * chem.H2KJ,
		ElecMP2: (complexMP2 - fragMP2) * chem.H2KJ,
	}
	if neutrals > 0 && hasIonic {
		c.DispHF = (complexHF - ionicHF - neuHF) * chem.H2KJ
		c.DispMP2 = (complexMP2 - ionicMP2 - neuMP2) * chem.H2KJ
	}
	if neutrals == 0 {
		c.PurelyIonic = true
	}
	c.TotalHF = c.ElecHF + c.DispHF
	c.TotalMP2 = c.ElecMP2 + c.DispMP2
	c.Dispersion = c.TotalMP2 - c.TotalHF
	if c.TotalMP2 != 0 {
		c.Electro = c.TotalHF / c.TotalMP2 * 100
	}
	return c
}

//Aggregate decomposes every system of the batch. The second return is
//whether the whole batch is purely ionic, which decides the output column
//set.
func Aggregate(recs []*Record) ([]*Config, bool) {
	groups := GroupBySystem(recs)
	configs := make([]*Config, 0, len(groups))
	purelyIonic := true
	for path, group := range groups {
		c := Decompose(path, group)
		if !c.PurelyIonic {
			purelyIonic = false
		}
		configs = append(configs, c)
	}
	return configs, purelyIonic
}
