/*
 * chem.go, part of chemassist.
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

//Package chem provides atom, molecule and fragment structures for preparing
//quantum-chemistry calculations, facilities for reading and writing XYZ
//geometries, and distance-based connectivity detection.
package chem

import (
	"fmt"
	"sort"

	v3 "github.com/tmason/chemassist/v3"
)

/*Note: some functions here panic instead of returning errors. They are
 * "fundamental" functions; if something goes wrong in them the program is
 * way-most likely wrong and should crash. The panics are related to using a
 * function on a nil object or accessing out-of-bounds fields.*/

//Atom contains the per-atom data read from a geometry file, except for the
//coordinates, which are kept in a v3.Matrix owned by the Molecule.
//Index is 1-based and contiguous, assigned at load time, and is reused
//verbatim in output decks and in FMO indexing, so it is never changed after
//loading.
type Atom struct {
	Symbol string
	Index  int
	Bonds  []*Bond
}

//Copy returns a copy of the Atom object, without its bonds.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	return &Atom{Symbol: A.Symbol, Index: A.Index}
}

//Molecule contains the atoms and coordinates of a molecular system, its
//total charge and multiplicity, and, once Separate has been called, its
//fragments.
type Molecule struct {
	Atoms  []*Atom
	Coords *v3.Matrix
	Name   string

	charge int
	multi  int

	fragments map[string]*Fragment
	ionic     *Fragment
}

//NewMolecule makes a molecule from atoms and coordinates. It returns an
//error if either slice is nil or their lengths are inconsistent.
func NewMolecule(ats []*Atom, coords *v3.Matrix) (*Molecule, error) {
	if ats == nil {
		return nil, fmt.Errorf("Supplied a nil atom slice")
	}
	if coords == nil {
		return nil, fmt.Errorf("Supplied nil coordinates")
	}
	if coords.NVecs() != len(ats) {
		return nil, fmt.Errorf("Inconsistent atoms/coordinates: %d vs %d", len(ats), coords.NVecs())
	}
	mol := new(Molecule)
	mol.Atoms = ats
	mol.Coords = coords
	mol.multi = 1
	for i, at := range mol.Atoms {
		at.Index = i + 1
	}
	return mol, nil
}

//Atom returns the Atom corresponding to the index i (0-based) of the Atom
//slice. Panics if out of range.
func (M *Molecule) Atom(i int) *Atom {
	if i >= M.Len() {
		panic("Molecule: Requested Atom out of bounds")
	}
	return M.Atoms[i]
}

//Len returns the number of atoms in the molecule.
func (M *Molecule) Len() int {
	return len(M.Atoms)
}

//Charge gets the total charge of the molecule.
func (M *Molecule) Charge() int {
	return M.charge
}

//Multi returns the multiplicity of the molecule.
func (M *Molecule) Multi() int {
	return M.multi
}

//SetCharge sets the total charge of the molecule to i.
func (M *Molecule) SetCharge(i int) {
	M.charge = i
}

//SetMulti sets the multiplicity of the molecule to i.
func (M *Molecule) SetMulti(i int) {
	M.multi = i
}

//Fragments returns the fragment map computed by Separate, or nil if
//Separate has not been called. The ionic network, if any, is included.
func (M *Molecule) Fragments() map[string]*Fragment {
	return M.fragments
}

//Ionic returns the ionic network fragment, or nil if the molecule has none
//or Separate has not been called.
func (M *Molecule) Ionic() *Fragment {
	return M.ionic
}

//SubMolecule returns a new molecule containing only the atoms of the given
//fragment, with its own copied coordinates, 1-based indexing restarted, and
//charge/multiplicity taken from the fragment.
func (M *Molecule) SubMolecule(f *Fragment) (*Molecule, error) {
	if f == nil {
		return nil, fmt.Errorf("Supplied a nil fragment")
	}
	ats := make([]*Atom, 0, len(f.Atoms))
	data := make([]float64, 0, 3*len(f.Atoms))
	row := make([]float64, 3)
	for _, i := range f.Atoms {
		if i >= M.Len() {
			return nil, fmt.Errorf("Fragment atom %d out of range", i)
		}
		ats = append(ats, M.Atoms[i].Copy())
		M.Coords.Row(row, i)
		data = append(data, row...)
	}
	coords, err := v3.NewMatrix(data)
	if err != nil {
		return nil, errDecorate(err, "SubMolecule")
	}
	sub, err := NewMolecule(ats, coords)
	if err != nil {
		return nil, errDecorate(err, "SubMolecule")
	}
	sub.Name = f.Name
	sub.SetCharge(f.Charge)
	sub.SetMulti(f.Multiplicity)
	return sub, nil
}

//Elements returns the element symbols present in the molecule paired with
//their atomic numbers as "N.0" strings, sorted by atomic number. Used for
//the element table of GAMESS $DATA blocks.
func (M *Molecule) Elements() [][2]string {
	seen := make(map[string]bool)
	syms := make([]string, 0, 5)
	for _, at := range M.Atoms {
		s := NormalizeSymbol(at.Symbol)
		if !seen[s] {
			seen[s] = true
			syms = append(syms, s)
		}
	}
	sort.Slice(syms, func(i, j int) bool { return symbolAtnum[syms[i]] < symbolAtnum[syms[j]] })
	ret := make([][2]string, 0, len(syms))
	for _, s := range syms {
		ret = append(ret, [2]string{s, fmt.Sprintf("%d.0", symbolAtnum[s])})
	}
	return ret
}
