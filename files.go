/*
 * files.go, part of chemassist.
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
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	v3 "github.com/tmason/chemassist/v3"
)

//XYZRead reads an xyz file and returns a Molecule. The molecule's Name is
//the file name without its extension. Atom indices are assigned 1-based in
//file order and never change afterwards.
func XYZRead(xyzname string) (*Molecule, error) {
	xyzfile, err := os.Open(xyzname)
	if err != nil {
		return nil, err
	}
	defer xyzfile.Close()
	xyz := bufio.NewReader(xyzfile)
	line, err := xyz.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("Ill formatted XYZ file %s", xyzname)
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return nil, fmt.Errorf("Ill formatted XYZ file %s", xyzname)
	}
	_, _ = xyz.ReadString('\n') //comment line, we dont care about it
	ats := make([]*Atom, natoms)
	coords := make([]float64, natoms*3)
	for i := 0; i < natoms; i++ {
		line, err = xyz.ReadString('\n')
		if err != nil && i < natoms-1 {
			return nil, fmt.Errorf("Line %d missing from file %s", i, xyzname)
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, fmt.Errorf("Line %d in file %s ill formed", i, xyzname)
		}
		ats[i] = &Atom{Symbol: NormalizeSymbol(fields[0])}
		for j := 0; j < 3; j++ {
			coords[i*3+j], err = strconv.ParseFloat(fields[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("Bad coordinate on line %d of file %s", i, xyzname)
			}
		}
	}
	mcoords, err := v3.NewMatrix(coords)
	if err != nil {
		return nil, errDecorate(err, "XYZRead")
	}
	mol, err := NewMolecule(ats, mcoords)
	if err != nil {
		return nil, errDecorate(err, "XYZRead")
	}
	base := filepath.Base(xyzname)
	mol.Name = strings.TrimSuffix(base, filepath.Ext(base))
	return mol, nil
}

//XYZWrite writes the molecule mol to an XYZ file with name xyzname, which
//will be created. If the file exists it will be overwritten.
func XYZWrite(mol *Molecule, xyzname string) error {
	out, err := os.Create(xyzname)
	if err != nil {
		return err
	}
	defer out.Close()
	fmt.Fprintf(out, "%d\n", mol.Len())
	fmt.Fprintf(out, "\n")
	row := make([]float64, 3)
	for i := range mol.Atoms {
		mol.Coords.Row(row, i)
		_, err = fmt.Fprintf(out, "%-2s %10.5f %10.5f %10.5f\n", mol.Atoms[i].Symbol, row[0], row[1], row[2])
		if err != nil {
			return err
		}
	}
	return nil
}

//WriteXYZLines writes pre-formatted coordinate lines, such as a geometry
//block extracted from a log file, as an XYZ file: atom count, blank comment
//line, then the lines verbatim.
func WriteXYZLines(lines []string, xyzname string) error {
	out, err := os.Create(xyzname)
	if err != nil {
		return err
	}
	defer out.Close()
	fmt.Fprintf(out, "%d\n\n", len(lines))
	for _, l := range lines {
		if _, err = fmt.Fprintln(out, l); err != nil {
			return err
		}
	}
	return nil
}
