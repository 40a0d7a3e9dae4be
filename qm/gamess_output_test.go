/*
 * gamess_output_test.go, part of chemassist.
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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

const fmoSpecLog = `          INPUT CARD> $SYSTEM MEMDDI=0 MWORDS=500 $END
          INPUT CARD> $CONTRL RUNTYP=ENERGY SCFTYP=RHF ICHARG=0 $END
          INPUT CARD> $BASIS GBASIS=CCT $END
          INPUT CARD> $FMO NFRAG=3 NBODY=3
          INPUT CARD>     MPLEVL(1)=2
          INPUT CARD>     SCSPT=SCS
          INPUT CARD> $END
     RUN TITLE
     ---------
 cluster

 ITER  1
   Euncorr HF(3)=      -100.10000000
   E corr SCS(3)=      -100.40000000
 ITER  2
   Euncorr HF(3)=      -100.20000000
   E corr SCS(3)=      -100.50000000
 EXECUTION OF GAMESS TERMINATED NORMALLY
`

func writeLog(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGamessOutputCompleted(t *testing.T) {
	path := writeLog(t, t.TempDir(), "spec.log", fmoSpecLog)
	out, err := ReadGamessOutput(path)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Completed() {
		t.Error("log should read as completed")
	}
	if rt := out.Runtype(); rt != "energy" {
		t.Errorf("runtype: got %q, want energy", rt)
	}
	if lvl := out.FMOLevel(); lvl != 3 {
		t.Errorf("FMO level: got %d, want 3", lvl)
	}
}

func TestGamessOutputLastEnergyWins(t *testing.T) {
	path := writeLog(t, t.TempDir(), "spec.log", fmoSpecLog)
	out, err := ReadGamessOutput(path)
	if err != nil {
		t.Fatal(err)
	}
	rec, err := out.Data()
	if err != nil {
		t.Fatal(err)
	}
	if !rec.HasHF || rec.HF != -100.2 {
		t.Errorf("HF: got %v (has=%v), want -100.2", rec.HF, rec.HasHF)
	}
	if !rec.HasMP2 || rec.MP2 != -100.5 {
		t.Errorf("MP2: got %v (has=%v), want -100.5", rec.MP2, rec.HasMP2)
	}
	if rec.Basis != "cc-pVTZ" {
		t.Errorf("basis: got %q, want cc-pVTZ", rec.Basis)
	}
	if rec.File != "spec.log" {
		t.Errorf("file: got %q", rec.File)
	}
}

func TestGamessOutputGzip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spec.log.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(f)
	if _, err := gz.Write([]byte(fmoSpecLog)); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()
	out, err := ReadGamessOutput(path)
	if err != nil {
		t.Fatal(err)
	}
	rec, err := out.Data()
	if err != nil {
		t.Fatal(err)
	}
	if rec.MP2 != -100.5 {
		t.Errorf("MP2 from gzipped log: got %v, want -100.5", rec.MP2)
	}
}

func TestGamessOutputNonFMO(t *testing.T) {
	log := `          INPUT CARD> $CONTRL RUNTYP=ENERGY SCFTYP=RHF $END
          INPUT CARD> $BASIS GBASIS=CCD $END
     RUN TITLE
     ---------
       TOTAL ENERGY =     -76.0267987123
 EXECUTION OF GAMESS TERMINATED NORMALLY
`
	path := writeLog(t, t.TempDir(), "spec.log", log)
	out, err := ReadGamessOutput(path)
	if err != nil {
		t.Fatal(err)
	}
	rec, err := out.Data()
	if err != nil {
		t.Fatal(err)
	}
	//no MPLEVL, no SCS: the total energy is a Hartree-Fock energy
	if !rec.HasHF || rec.HF != -76.0267987123 {
		t.Errorf("HF: got %v (has=%v)", rec.HF, rec.HasHF)
	}
	if rec.HasMP2 {
		t.Errorf("unexpected correlated energy %v", rec.MP2)
	}
	if rec.Basis != "cc-pVDZ" {
		t.Errorf("basis: got %q, want cc-pVDZ", rec.Basis)
	}
	if rec.FMOLevel != 0 {
		t.Errorf("FMO level: got %d, want 0", rec.FMOLevel)
	}
}

func TestGamessOutputIncomplete(t *testing.T) {
	log := `          INPUT CARD> $CONTRL RUNTYP=ENERGY $END
     RUN TITLE
 ITER 1
`
	path := writeLog(t, t.TempDir(), "spec.log", log)
	out, err := ReadGamessOutput(path)
	if err != nil {
		t.Fatal(err)
	}
	if out.Completed() {
		t.Error("truncated log should not read as completed")
	}
	rec, err := out.Data()
	if err == nil {
		t.Fatal("expected an error for a log without energies")
	}
	if _, ok := err.(*LogParseError); !ok {
		t.Errorf("expected *LogParseError, got %T", err)
	}
	//the record still comes back so the caller can report the file
	if rec == nil || rec.File != "spec.log" {
		t.Errorf("expected a partial record, got %+v", rec)
	}
}

const optInp = ` $SYSTEM MWORDS=500 $END
 $CONTRL RUNTYP=OPTIMIZE $END
 $DATA
water
C1
 O     8.0    0.00000    0.00000    0.00000
 H     1.0    0.96000    0.00000    0.00000
 H     1.0   -0.24000    0.93000    0.00000
 $END
`

const optJob = `#!/bin/bash
rungms opt.inp > opt.log
`

const failedOptLog = `          INPUT CARD> $CONTRL RUNTYP=OPTIMIZE $END
     RUN TITLE
 NSERCH=  4

          ALWAYS THE LAST POINT COMPUTED!
 O           8.0   0.1230000000   0.4560000000   0.7890000000
 H           1.0   1.0830000000   0.4560000000   0.7890000000
 H           1.0  -0.1170000000   1.3860000000   0.7890000000

 ddikick exited unexpectedly
`

func TestGamessRecoverRerun(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "opt.inp", optInp)
	writeLog(t, dir, "opt.job", optJob)
	path := writeLog(t, dir, "opt.log", failedOptLog)
	out, err := ReadGamessOutput(path)
	if err != nil {
		t.Fatal(err)
	}
	if out.Completed() {
		t.Fatal("failed log should not read as completed")
	}
	msg, err := out.Recover()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(msg, "rerun") {
		t.Errorf("unexpected diagnosis: %q", msg)
	}
	xyz, err := os.ReadFile(filepath.Join(dir, "rerun", "rerun.xyz"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(xyz), "3\n") {
		t.Errorf("rerun.xyz should start with the atom count:\n%s", xyz)
	}
	if !strings.Contains(string(xyz), "0.1230000000") {
		t.Errorf("rerun.xyz missing the last computed geometry:\n%s", xyz)
	}
	inp, err := os.ReadFile(filepath.Join(dir, "rerun", "rerun.inp"))
	if err != nil {
		t.Fatal(err)
	}
	s := string(inp)
	if !strings.Contains(s, "RUNTYP=OPTIMIZE") || !strings.Contains(s, "C1\n") {
		t.Errorf("rerun.inp lost the original header:\n%s", s)
	}
	if strings.Contains(s, "0.96000") {
		t.Errorf("rerun.inp still carries the original coordinates:\n%s", s)
	}
	if !strings.Contains(s, "0.1230000000") {
		t.Errorf("rerun.inp missing the new coordinates:\n%s", s)
	}
	if !strings.HasSuffix(s, " $END") {
		t.Errorf("rerun.inp must end with $END:\n%s", s)
	}
	job, err := os.ReadFile(filepath.Join(dir, "rerun", "rerun.job"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(job), "rerun.inp") || !strings.Contains(string(job), "rerun.log") {
		t.Errorf("rerun.job names not rewritten:\n%s", job)
	}
	if strings.Contains(string(job), "opt.inp") {
		t.Errorf("rerun.job still references the original input:\n%s", job)
	}
}

func TestGamessRecoverEquilibrium(t *testing.T) {
	log := `          INPUT CARD> $CONTRL RUNTYP=OPTIMIZE $END
     RUN TITLE

      ***** EQUILIBRIUM GEOMETRY LOCATED *****
 O           8.0   0.1230000000   0.4560000000   0.7890000000
 H           1.0   1.0830000000   0.4560000000   0.7890000000
 H           1.0  -0.1170000000   1.3860000000   0.7890000000

 semget errno=28
`
	dir := t.TempDir()
	path := writeLog(t, dir, "opt.log", log)
	out, err := ReadGamessOutput(path)
	if err != nil {
		t.Fatal(err)
	}
	msg, err := out.Recover()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(msg, "equilibrium") {
		t.Errorf("unexpected diagnosis: %q", msg)
	}
	xyz, err := os.ReadFile(filepath.Join(dir, "equil.xyz"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(xyz), "3\n") {
		t.Errorf("equil.xyz should start with the atom count:\n%s", xyz)
	}
}

func TestGamessRecoverNothing(t *testing.T) {
	log := `          INPUT CARD> $CONTRL RUNTYP=OPTIMIZE $END
     RUN TITLE
`
	dir := t.TempDir()
	path := writeLog(t, dir, "opt.log", log)
	out, err := ReadGamessOutput(path)
	if err != nil {
		t.Fatal(err)
	}
	msg, err := out.Recover()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(msg, "no iterations") {
		t.Errorf("unexpected diagnosis: %q", msg)
	}
	if _, err := os.Stat(filepath.Join(dir, "rerun")); !os.IsNotExist(err) {
		t.Error("no rerun directory should be created")
	}
}
