/*
 * gamess.go, part of chemassist.
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
	"strconv"
	"strings"

	chem "github.com/tmason/chemassist"
)

//GamessHandle builds GAMESS input decks, in the fixed-column $SECTION
//format, with optional FMO (Fragment Molecular Orbital) decomposition.
type GamessHandle struct {
	inputname string
	name      string
	fmo       bool
	hint      int
}

//NewGamessHandle returns a handle with no name set; the base name then
//defaults to the run-type stem (opt, spec, hess).
func NewGamessHandle() *GamessHandle {
	return new(GamessHandle)
}

func (G *GamessHandle) SetName(name string) {
	G.inputname = name
}

//Name returns the base name used by the last BuildInput call.
func (G *GamessHandle) Name() string {
	return G.name
}

//SetFMO switches FMO mode on or off. In FMO mode the molecule is separated
//into fragments, a GDDI worker-group section is emitted and the FMO
//section carries the INDAT/ICHARG fragment metadata.
func (G *GamessHandle) SetFMO(fmo bool) {
	G.fmo = fmo
}

//SetFragmentHint gives the expected number of chemical units for the
//fragment separation, for systems the heuristic cannot classify alone.
func (G *GamessHandle) SetFragmentHint(n int) {
	G.hint = n
}

//Canonical section orders. Sections not listed are spliced in after the
//listed ones, just before $DATA.
var gamessFMOOrder = []string{"SYSTEM", "CONTRL", "GDDI", "STATPT", "SCF", "BASIS", "FMO", "MP2"}
var gamessOrder = []string{"SYSTEM", "CONTRL", "STATPT", "SCF", "BASIS", "MP2"}

//BuildInput writes a GAMESS input deck for mol as <name>.inp. The user
//settings are merged over the GAMESS defaults; the merged copy is private
//to this job.
func (G *GamessHandle) BuildInput(mol *chem.Molecule, user *Settings) error {
	if mol == nil || mol.Coords == nil {
		return fmt.Errorf("Missing molecule or coordinates")
	}
	merged := DefaultGamessSettings().Merge(user)
	input := merged.Child("input")
	if input == nil {
		return NewConfigurationError("Settings carry no input section")
	}
	runtype, ok := input.Get("contrl", "runtyp")
	if !ok {
		return NewConfigurationError("No run directive: input.contrl.runtyp is required")
	}
	runtype = strings.ToLower(runtype)
	if G.fmo {
		if err := G.addFMO(mol, input, runtype); err != nil {
			return err
		}
	}
	G.makeAutomaticChanges(input, user)
	header := G.orderHeader(G.parseSettings(input), runtype)
	deck := header + G.dataBlock(mol)
	G.name = G.inputname
	if G.name == "" {
		G.name = stemFor(runtype)
	}
	file, err := os.Create(G.name + ".inp")
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = fmt.Fprint(file, deck)
	return err
}

//addFMO separates the molecule and stores the FMO and GDDI sections in the
//input settings, so they are rendered like any other section.
func (G *GamessHandle) addFMO(mol *chem.Molecule, input *Settings, runtype string) error {
	if _, err := mol.Separate(G.hint); err != nil {
		return err
	}
	indat, icharg, err := mol.FMOMeta()
	if err != nil {
		return err
	}
	//FMO2 is enough along an optimization; single points get the more
	//accurate three-body expansion and a tighter correlation sphere.
	nbody, rcorsd := 3, 50
	if runtype == "optimize" || runtype == "hessian" {
		nbody, rcorsd = 2, 100
	}
	nfrag := len(icharg)
	s := fmt.Sprintf("\n     NFRAG=%d NBODY=%d\n", nfrag, nbody)
	s += "     MPLEVL(1)=2\n"
	s += fmt.Sprintf("     INDAT(1)=%s\n", indat[0])
	for _, d := range indat[1:] {
		s += fmt.Sprintf("%s%s\n", strings.Repeat(" ", 14), d)
	}
	s += fmt.Sprintf("     ICHARG(1)=%s\n", strings.Join(icharg, ","))
	s += fmt.Sprintf("     RESPAP=0 RESPPC=-1 RESDIM=100 RCORSD=%d", rcorsd)
	input.Set(s, "fmo")
	input.Set(strconv.Itoa(nfrag), "gddi", "ngroup")
	return nil
}

//makeAutomaticChanges closes defaults the user should not have to remember:
//the cc-pVTZ basis wants the SRS opposite-spin parameter 1.64 instead of
//the cc-pVDZ value. An explicitly set user value is never overridden.
func (G *GamessHandle) makeAutomaticChanges(input *Settings, user *Settings) {
	gbasis, _ := input.Get("basis", "gbasis")
	if strings.ToLower(gbasis) == "cct" && !user.Has("input", "mp2", "scsopo") {
		input.Set("1.64", "mp2", "scsopo")
	}
}

//block is one rendered $SECTION, remembering the key it came from so the
//header ordering can find it.
type block struct {
	key  string
	text string
}

//parseSettings transforms the input settings into one $SECTION block per
//top-level key. A nested level becomes " $KEY SUB=VAL ... $END"; a scalar
//becomes " $KEY VALUE\n $END". Everything is upper-cased, as the
//fixed-column format requires.
func (G *GamessHandle) parseSettings(input *Settings) []block {
	blocks := make([]block, 0, input.Len())
	for _, key := range input.Keys() {
		if child := input.Child(key); child != nil {
			text := " $" + strings.ToUpper(key)
			for _, sub := range child.Keys() {
				text += fmt.Sprintf(" %s=%s", strings.ToUpper(sub), strings.ToUpper(child.Value(sub)))
			}
			text += " $END\n"
			blocks = append(blocks, block{key: strings.ToUpper(key), text: text})
			continue
		}
		text := fmt.Sprintf(" $%s %s\n $END\n", strings.ToUpper(key), strings.ToUpper(input.Value(key)))
		blocks = append(blocks, block{key: strings.ToUpper(key), text: text})
	}
	return blocks
}

//orderHeader reorders the section blocks into the canonical order for the
//current mode. Sections with no canonical position keep their relative
//order and go after the canonical ones, just before $DATA. The optimizer
//step section is dropped entirely for non-optimization runs so the engine
//never silently ignores it.
func (G *GamessHandle) orderHeader(blocks []block, runtype string) string {
	desired := gamessOrder
	if G.fmo {
		desired = gamessFMOOrder
	}
	known := make(map[string]bool, len(desired))
	for _, k := range desired {
		known[k] = true
	}
	header := ""
	for _, want := range desired {
		if want == "STATPT" && runtype != "optimize" {
			continue
		}
		for _, b := range blocks {
			if b.key == want {
				header += b.text
			}
		}
	}
	for _, b := range blocks {
		if !known[b.key] {
			header += b.text
		}
	}
	return header
}

//dataBlock renders the $DATA section: title, C1 symmetry, and the
//coordinates. FMO runs list the element table first and group the atoms
//under $FMOXYZ.
func (G *GamessHandle) dataBlock(mol *chem.Molecule) string {
	inp := " $DATA\n"
	inp += mol.Name + "\n"
	inp += "C1\n"
	if G.fmo {
		for _, el := range mol.Elements() {
			inp += fmt.Sprintf(" %s %s\n", el[0], el[1])
		}
		inp += " $END\n"
		inp += " $FMOXYZ\n"
	}
	row := make([]float64, 3)
	for i, at := range mol.Atoms {
		mol.Coords.Row(row, i)
		inp += fmt.Sprintf(" %-5s %d.0 %10.5f %10.5f %10.5f\n",
			at.Symbol, chem.AtomicNumber(at.Symbol), row[0], row[1], row[2])
	}
	inp += " $END"
	return inp
}
