/*
 * psi.go, part of chemassist.
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

package qm

import (
	"fmt"
	"os"

	chem "github.com/tmason/chemassist"
)

//PsiHandle builds PSI4 input decks: a structured block format ending in an
//explicit run directive such as energy('mp2').
type PsiHandle struct {
	inputname string
	name      string
}

//NewPsiHandle returns a handle with no name set; the base name then
//defaults to the run-type stem (opt, spec, hess).
func NewPsiHandle() *PsiHandle {
	return new(PsiHandle)
}

func (P *PsiHandle) SetName(name string) {
	P.inputname = name
}

//Name returns the base name used by the last BuildInput call.
func (P *PsiHandle) Name() string {
	return P.name
}

//BuildInput writes a PSI4 input deck for mol as <name>.inp. The user
//settings are merged over the PSI4 defaults. A user-supplied run mapping
//replaces the default one outright: a deck can only have one run type, so
//the two must not be unioned by the merge.
func (P *PsiHandle) BuildInput(mol *chem.Molecule, user *Settings) error {
	if mol == nil || mol.Coords == nil {
		return fmt.Errorf("Missing molecule or coordinates")
	}
	defaults := DefaultPsiSettings()
	if user.Has("input", "run") {
		defaults.Child("input").Delete("run")
	}
	merged := defaults.Merge(user)
	input := merged.Child("input")
	if input == nil {
		return NewConfigurationError("Settings carry no input section")
	}
	run := input.Child("run")
	if run == nil || run.Len() == 0 {
		return NewConfigurationError("No run directive: input.run is required")
	}
	deck := P.makeHeader(mol, input)
	deck += P.unboundSection(input)
	deck += P.globalsSection(input)
	directive, runkw, err := runDirective(run)
	if err != nil {
		return err
	}
	deck += directive
	P.name = P.inputname
	if P.name == "" {
		P.name = stemFor(runkw)
	}
	file, err := os.Create(P.name + ".inp")
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = fmt.Fprint(file, deck)
	return err
}

//makeHeader renders the comment, memory line and the molecule block with
//charge, multiplicity and coordinates. User keys under input.molecule
//beyond the standard four are emitted before the closing brace.
func (P *PsiHandle) makeHeader(mol *chem.Molecule, input *Settings) string {
	m := input.Child("molecule")
	s := fmt.Sprintf("# PSI4 Calc: %s\n\n", mol.Name)
	s += fmt.Sprintf("memory %s\n\n", input.Value("memory"))
	s += "molecule complex {\n"
	s += fmt.Sprintf("%s %s\n", m.Value("charge"), m.Value("multiplicity"))
	row := make([]float64, 3)
	for i, at := range mol.Atoms {
		mol.Coords.Row(row, i)
		s += fmt.Sprintf(" %-5s %10.5f %10.5f %10.5f\n", at.Symbol, row[0], row[1], row[2])
	}
	s += fmt.Sprintf("units %s\n", m.Value("units"))
	s += "no_reorient\n"
	s += fmt.Sprintf("symmetry %s\n", m.Value("symmetry"))
	for _, key := range m.Keys() {
		switch key {
		case "charge", "multiplicity", "units", "symmetry":
			continue
		}
		s += fmt.Sprintf("%s %s\n", key, m.Value(key))
	}
	s += "}\n"
	return s
}

//unboundSection renders input.unbound: free-floating key/value lines
//between the molecule and globals blocks. Nested levels are flattened to
//their leaf keys.
func (P *PsiHandle) unboundSection(input *Settings) string {
	unbound := input.Child("unbound")
	if unbound == nil || unbound.Len() == 0 {
		return ""
	}
	s := "\n"
	var flatten func(t *Settings)
	flatten = func(t *Settings) {
		for _, key := range t.Keys() {
			if child := t.Child(key); child != nil {
				flatten(child)
				continue
			}
			s += fmt.Sprintf("%s %s\n", key, t.Value(key))
		}
	}
	flatten(unbound)
	return s
}

//globalsSection renders the set globals block.
func (P *PsiHandle) globalsSection(input *Settings) string {
	globals := input.Child("globals")
	if globals == nil {
		return ""
	}
	s := "\nset globals {\n"
	for _, key := range globals.Keys() {
		s += fmt.Sprintf("    %s %s\n", key, globals.Value(key))
	}
	s += "}\n"
	return s
}

//runDirective assembles the final run line from the run mapping: the
//primary run keyword and its method first, then any additional
//keyword=value pairs in the order they were declared. Declaration order is
//load-bearing: the target parser assigns some arguments positionally, and
//alphabetical ordering has been seen to swap them.
func runDirective(run *Settings) (directive, runkw string, err error) {
	for _, key := range run.Keys() {
		if key != "additional" {
			runkw = key
			break
		}
	}
	if runkw == "" {
		return "", "", NewConfigurationError("Run mapping has only additional arguments and no run keyword")
	}
	directive = fmt.Sprintf("\n%s('%s'", runkw, run.Value(runkw))
	if additional := run.Child("additional"); additional != nil {
		for _, key := range additional.Keys() {
			directive += fmt.Sprintf(", %s='%s'", key, additional.Value(key))
		}
	}
	directive += ")"
	return directive, runkw, nil
}
