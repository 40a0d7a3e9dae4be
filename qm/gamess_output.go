/*
 * gamess_output.go, part of chemassist.
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
	"path/filepath"
	"strconv"
	"strings"

	chem "github.com/tmason/chemassist"
)

//GamessOutput holds the lines of a GAMESS log file together with its
//location, and extracts results or recovery geometries from them.
type GamessOutput struct {
	file  string //base name of the log file
	path  string //directory holding it
	lines []string
}

//ReadGamessOutput reads a GAMESS log file, decompressing it if the name
//ends in .gz.
func ReadGamessOutput(filename string) (*GamessOutput, error) {
	lines, err := readLogLines(filename)
	if err != nil {
		return nil, NewLogParseError(fmt.Sprintf("qm.ReadGamessOutput: %s: %v", filename, err))
	}
	abs, err := filepath.Abs(filename)
	if err != nil {
		abs = filename
	}
	return &GamessOutput{
		file:  filepath.Base(filename),
		path:  filepath.Dir(abs),
		lines: lines,
	}, nil
}

//File returns the base name of the log file.
func (O *GamessOutput) File() string { return O.file }

//Path returns the directory holding the log file.
func (O *GamessOutput) Path() string { return O.path }

//Completed returns whether GAMESS reported normal termination anywhere in
//the log. Walltime kills and node failures truncate the file, so the
//marker can be missing even after useful iterations.
func (O *GamessOutput) Completed() bool {
	for _, line := range O.lines {
		if strings.Contains(line, "EXECUTION OF GAMESS TERMINATED NORMALLY") {
			return true
		}
	}
	return false
}

//Runtype returns the run type echoed in the log (lowercased), from the
//first RUNTYP= occurrence, or the empty string if none is found.
func (O *GamessOutput) Runtype() string {
	for _, line := range O.lines {
		if !strings.Contains(strings.ToUpper(line), "RUNTYP=") {
			continue
		}
		for _, p := range strings.Fields(line) {
			if strings.Contains(p, "RUNTYP=") {
				return strings.ToLower(strings.SplitN(p, "=", 2)[1])
			}
		}
	}
	return ""
}

//IsOptimization returns whether the log belongs to a geometry
//optimization.
func (O *GamessOutput) IsOptimization() bool {
	return O.Runtype() == "optimize"
}

//FMOLevel returns the n-body level of an FMO calculation, or 0 when the
//run did not use FMO.
func (O *GamessOutput) FMOLevel() int {
	for _, line := range O.lines {
		if strings.Contains(line, "NBODY") {
			fields := strings.Fields(line)
			last := fields[len(fields)-1]
			parts := strings.Split(last, "=")
			n, err := strconv.Atoi(strings.TrimSuffix(parts[len(parts)-1], ","))
			if err != nil {
				return 0
			}
			return n
		}
	}
	return 0
}

//calcType classifies the calculation from the input echo at the top of
//the log. The echo ends at the RUN TITLE banner, so scanning stops there.
func (O *GamessOutput) calcType() (fmo, mp2, scs bool) {
	for _, line := range O.lines {
		switch {
		case strings.Contains(line, "FMO"):
			fmo = true
		case strings.Contains(line, "MPLEVL"):
			mp2 = true
		case strings.Contains(line, "SCS"):
			scs = true
		case strings.Contains(line, "RUN TITLE"):
			return fmo, mp2, scs
		}
	}
	return fmo, mp2, scs
}

//mp2Data extracts basis, HF and correlated energies from an FMO log,
//keeping the last occurrence of each marker. corrLabel is "SCS" or "MP2"
//depending on which correlation treatment the run used.
func (O *GamessOutput) mp2Data(corrLabel string) (rec *JobRecord) {
	rec = &JobRecord{}
	corrMarker := "E corr " + corrLabel
	for _, line := range O.lines {
		if strings.Contains(line, "Euncorr HF") {
			fields := strings.Fields(line)
			if v, err := strconv.ParseFloat(fields[len(fields)-1], 64); err == nil {
				rec.HF = v
				rec.HasHF = true
			}
		}
		if strings.Contains(line, "INPUT CARD> $BASIS") {
			rec.Basis = basisFromCard(line)
		}
		if strings.Contains(line, corrMarker) {
			fields := strings.Fields(line)
			if v, err := strconv.ParseFloat(fields[len(fields)-1], 64); err == nil {
				rec.MP2 = v
				rec.HasMP2 = true
			}
		}
	}
	return rec
}

//basisFromCard pulls the basis code from an echoed $BASIS card, e.g.
//"INPUT CARD> $BASIS GBASIS=CCT $END" yields "CCT".
func basisFromCard(line string) string {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return ""
	}
	parts := strings.Split(fields[len(fields)-2], "=")
	return parts[len(parts)-1]
}

//Data extracts the result record from a completed log: basis set
//(translated to its conventional name), HF and correlated energies (last
//occurrence of each), run type and FMO level. A log without any energy
//yields a LogParseError; the record is still returned so the caller can
//report the file as incomplete rather than abort.
func (O *GamessOutput) Data() (*JobRecord, error) {
	fmo, mp2, scs := O.calcType()
	var rec *JobRecord
	switch {
	case fmo && scs:
		rec = O.mp2Data("SCS")
	case fmo && mp2:
		rec = O.mp2Data("MP2")
	default:
		rec = &JobRecord{}
		for _, line := range O.lines {
			if strings.Contains(line, "INPUT CARD> $BASIS") {
				rec.Basis = basisFromCard(line)
			}
			if strings.Contains(line, "TOTAL ENERGY =") {
				fields := strings.Fields(line)
				if v, err := strconv.ParseFloat(fields[len(fields)-1], 64); err == nil {
					if scs || mp2 {
						rec.MP2 = v
						rec.HasMP2 = true
					} else {
						rec.HF = v
						rec.HasHF = true
					}
				}
			}
		}
	}
	rec.File = O.file
	rec.Path = O.path
	rec.Runtype = O.Runtype()
	rec.FMOLevel = O.FMOLevel()
	if name, ok := basisNames[rec.Basis]; ok {
		rec.Basis = name
	}
	if !rec.HasHF && !rec.HasMP2 {
		return rec, NewLogParseError(fmt.Sprintf("qm.GamessOutput.Data: no energies found in %s", O.file))
	}
	return rec, nil
}

//Recover inspects an incomplete optimization and writes what is needed to
//continue it. Three outcomes are possible: the equilibrium geometry was
//located (written to equil.xyz; the crash came after convergence, so the
//resource allocation should be checked), intermediate geometries exist
//(a ready-to-submit restart is written under rerun/), or no iteration
//finished (nothing to salvage). The returned string describes the
//outcome.
func (O *GamessOutput) Recover() (string, error) {
	if !O.IsOptimization() {
		return fmt.Sprintf("%s: run failed, no recovery available for runtype %q", O.file, O.Runtype()), nil
	}
	var equil, rerun []string
	var inEquil, inRerun bool
	for _, line := range O.lines {
		if strings.Contains(line, "EQUILIBRIUM GEOMETRY LOCATED") {
			inEquil = true
			equil = nil
		}
		if strings.Contains(line, "ALWAYS THE LAST POINT COMPUTED") {
			//several search points can print this banner; the geometry
			//under the last one is the one worth restarting from
			inRerun = true
			rerun = nil
		}
		if inEquil && geometryLine.MatchString(line) {
			equil = append(equil, line)
		}
		if inRerun && geometryLine.MatchString(line) {
			rerun = append(rerun, line)
		}
		if strings.TrimSpace(line) == "" {
			inEquil = false
			inRerun = false
		}
	}
	switch {
	case len(equil) > 0:
		if err := chem.WriteXYZLines(equil, filepath.Join(O.path, "equil.xyz")); err != nil {
			return "", NewRecoveryWriteError(fmt.Sprintf("qm.GamessOutput.Recover: %v", err))
		}
		return fmt.Sprintf("%s: equilibrium geometry found but the run crashed afterwards, check resource allocation before resubmitting", O.file), nil
	case len(rerun) > 0:
		if err := O.writeRerun(rerun); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s: needs resubmitting, coords stored in rerun/rerun.xyz", O.file), nil
	default:
		return fmt.Sprintf("%s: no iterations were completed", O.file), nil
	}
}

//writeRerun creates the rerun/ directory next to the log and fills it
//with rerun.xyz, a rerun.inp rebuilt from the original deck with the last
//computed geometry spliced in, and, when the original job script exists,
//a rerun.job with the file names rewritten.
func (O *GamessOutput) writeRerun(coords []string) error {
	rerunDir := filepath.Join(O.path, "rerun")
	if err := os.MkdirAll(rerunDir, 0755); err != nil {
		return NewRecoveryWriteError(fmt.Sprintf("qm.GamessOutput.writeRerun: %v", err))
	}
	if err := chem.WriteXYZLines(coords, filepath.Join(rerunDir, "rerun.xyz")); err != nil {
		return NewRecoveryWriteError(fmt.Sprintf("qm.GamessOutput.writeRerun: %v", err))
	}
	//the input and job scripts share the log's stem, whatever the log
	//extension was
	logName := strings.TrimSuffix(O.file, ".gz")
	ext := strings.TrimPrefix(filepath.Ext(logName), ".")
	stem := strings.TrimSuffix(logName, ext)
	inpName := stem + "inp"
	jobName := stem + "job"

	orig, err := os.ReadFile(filepath.Join(O.path, inpName))
	if err != nil {
		return NewRecoveryWriteError(fmt.Sprintf("qm.GamessOutput.writeRerun: original input: %v", err))
	}
	var deck strings.Builder
	for _, line := range strings.Split(string(orig), "\n") {
		if geometryLine.MatchString(line) {
			break
		}
		deck.WriteString(line)
		deck.WriteString("\n")
	}
	for _, line := range coords {
		deck.WriteString(line)
		deck.WriteString("\n")
	}
	deck.WriteString(" $END")
	if err := os.WriteFile(filepath.Join(rerunDir, "rerun.inp"), []byte(deck.String()), 0644); err != nil {
		return NewRecoveryWriteError(fmt.Sprintf("qm.GamessOutput.writeRerun: %v", err))
	}

	//the job script is optional; runs submitted by hand may not have one
	job, err := os.ReadFile(filepath.Join(O.path, jobName))
	if err == nil {
		newjob := strings.ReplaceAll(string(job), inpName, "rerun.inp")
		newjob = strings.ReplaceAll(newjob, logName, "rerun."+ext)
		if err := os.WriteFile(filepath.Join(rerunDir, "rerun.job"), []byte(newjob), 0644); err != nil {
			return NewRecoveryWriteError(fmt.Sprintf("qm.GamessOutput.writeRerun: %v", err))
		}
	}
	return nil
}
