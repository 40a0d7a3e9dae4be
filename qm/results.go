/*
 * results.go, part of chemassist.
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
	"bufio"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/klauspost/compress/gzip"
)

//A coordinate-bearing line: an element symbol of one or two letters
//followed by four numeric fields with decimal points. Used both for
//equilibrium and for last-point geometry extraction, and for finding where
//the coordinates start in an input deck.
var geometryLine = regexp.MustCompile(`[A-Za-z]{1,2}(\s*\D?[0-9]{1,3}\.[0-9]{1,10}){4}`)

//Basis-set codes mapped to their human-readable names. Codes not listed
//pass through unchanged.
var basisNames = map[string]string{
	"CCD":  "cc-pVDZ",
	"CCT":  "cc-pVTZ",
	"CCQ":  "cc-pVQZ",
	"aCCD": "aug-cc-pVDZ",
	"aCCT": "aug-cc-pVTZ",
	"aCCQ": "aug-cc-pVQZ",
}

//JobRecord is the result extracted from one calculation's log file. A
//missing energy is marked by its Has flag; both the Hartree-Fock and the
//correlated energy can be absent when a run is incomplete.
type JobRecord struct {
	File     string //log file name
	Path     string //directory holding the log file
	Basis    string
	HF       float64
	HasHF    bool
	MP2      float64 //correlated (MP2 or SRS) energy
	HasMP2   bool
	Runtype  string
	FMOLevel int //0 for non-FMO runs
}

//readLogLines reads a whole log file as lines. Files ending in .gz are
//decompressed transparently; the logs of large FMO jobs are routinely
//stored compressed.
func readLogLines(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(filename, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	lines := make([]string, 0, 1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
