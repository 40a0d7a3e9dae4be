/*
 * interactions.go, part of chemassist.
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

//Package interactions aggregates per-job energies into interaction
//energies: it groups single-point results by molecular system, decomposes
//them into electrostatic and dispersion components, and ranks
//configurations within each cation-anion family.
package interactions

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	chem "github.com/tmason/chemassist"
)

//Role tags what a single calculation contributed to its system. The
//string markers in directory names are only consulted when a record is
//read; everything after that works on the tag.
type Role int

const (
	RoleUnknown Role = iota
	RoleComplex      //the whole-system reference energy
	RoleIonic        //the ion-network supersystem
	RoleFragment     //one separable charged fragment
	RoleNeutral      //one separable neutral fragment
)

//Record is one job's result within its molecular system.
type Record struct {
	System string //path prefix identifying the configuration
	File   string //path after the run-type directory, plus the file name
	Basis  string
	HF     float64
	MP2    float64
	Role   Role
}

//splitPath cuts a job path at the first run-type directory (opt, spec or
//hess): the part before identifies the molecular system, the part after
//locates the job within it. c4mim/ac/4/p2/spec/frags/water4 becomes
//system c4mim/ac/4/p2 and tail frags/water4.
func splitPath(path string) (system, tail string, ok bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i, part := range parts {
		if part == "opt" || part == "spec" || part == "hess" {
			return strings.Join(parts[:i], "/"), strings.Join(parts[i+1:], "/"), true
		}
	}
	return "", "", false
}

//classify assigns the role from the directory markers in the job's tail
//path. A fragment is neutral when a known neutral species name appears in
//its path.
func classify(tail string) Role {
	switch {
	case strings.Contains(tail, "complex"):
		return RoleComplex
	case strings.Contains(tail, "ionic"):
		return RoleIonic
	case strings.Contains(tail, "frags"):
		for _, neutral := range chem.Neutrals {
			if strings.Contains(tail, neutral) {
				return RoleNeutral
			}
		}
		return RoleFragment
	}
	return RoleUnknown
}

//ReadRecords parses a results CSV (file, path, basis, HF, MP2 with a
//header row; a UTF-8 byte order mark is tolerated). A record that cannot
//be parsed is skipped with a warning on stderr: one bad row must not
//lose the batch.
func ReadRecords(filename string) ([]*Record, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	text := strings.TrimPrefix(string(data), "\ufeff")
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("Malformed results file %s: %v", filename, err)
	}
	recs := make([]*Record, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue //header
		}
		rec, err := parseRow(row)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Skipping record %d of %s: %v\n", i+1, filename, err)
			continue
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func parseRow(row []string) (*Record, error) {
	if len(row) != 5 {
		return nil, fmt.Errorf("Expected 5 fields, got %d", len(row))
	}
	file, path, basis := row[0], row[1], row[2]
	hf, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
	if err != nil {
		return nil, fmt.Errorf("Bad HF energy %q", row[3])
	}
	mp2, err := strconv.ParseFloat(strings.TrimSpace(row[4]), 64)
	if err != nil {
		return nil, fmt.Errorf("Bad MP2 energy %q", row[4])
	}
	system, tail, ok := splitPath(path)
	if !ok {
		return nil, fmt.Errorf("No run-type directory in path %q", path)
	}
	return &Record{
		System: system,
		File:   tail + "/" + file,
		Basis:  basis,
		HF:     hf,
		MP2:    mp2,
		Role:   classify(tail),
	}, nil
}

//GroupBySystem splits records by their system key, keeping each group's
//records in input order.
func GroupBySystem(recs []*Record) map[string][]*Record {
	groups := make(map[string][]*Record)
	for _, r := range recs {
		groups[r.System] = append(groups[r.System], r)
	}
	return groups
}
