/*
 * script.go, part of chemassist.
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

package job

import (
	"os"
	"strings"

	"github.com/tmason/chemassist/qm"
)

//Resources are the scheduler resource requests of one job, as strings so
//scheduler spellings like 2:00:00 and 32gb pass through untouched.
type Resources struct {
	Time  string
	Mem   string
	Jobfs string
	Ncpus string
}

//ResourcesFrom reads the job section of a settings tree, falling back to
//the GAMESS template defaults for anything unset.
func ResourcesFrom(s *qm.Settings) Resources {
	merged := qm.DefaultGamessSettings().Merge(s)
	var r Resources
	r.Time, _ = merged.Get("job", "time")
	r.Mem, _ = merged.Get("job", "mem")
	r.Jobfs, _ = merged.Get("job", "jobfs")
	r.Ncpus, _ = merged.Get("job", "ncpus")
	return r
}

//Accepted supercomputer names and their canonical tags.
var supercomps = map[string]string{
	"raijin":  "rjn",
	"rjn":     "rjn",
	"magnus":  "mgs",
	"mgs":     "mgs",
	"gaia":    "gaia",
	"monarch": "mon",
	"mon":     "mon",
}

//ResolveSupercomp maps a user-given supercomputer name to its canonical
//tag. Unknown names are a configuration error, never a guess.
func ResolveSupercomp(name string) (string, error) {
	sc, ok := supercomps[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", qm.NewConfigurationError("Unknown supercomputer " + name + ", use raijin/rjn, magnus/mgs, gaia or monarch/mon")
	}
	return sc, nil
}

//Per-machine script heads. Raijin and Magnus scripts reference the job by
//the literal token "name", Monarch by "base_name"; token replacement is a
//plain string substitution, there is no template language.
func scriptHead(engine Engine, sc string) []string {
	switch sc {
	case "rjn":
		lines := []string{
			"#!/bin/bash",
			"#PBS -P k96",
			"#PBS -q normal",
			"#PBS -l walltime={time}",
			"#PBS -l ncpus={ncpus}",
			"#PBS -l mem={mem}",
			"#PBS -l jobfs={jobfs}",
			"#PBS -l wd",
		}
		if engine == PSI4 {
			return append(lines,
				"module load psi4",
				"psi4 -i name.inp -o name.out")
		}
		return append(lines,
			"module load gamess",
			"rungms name.inp $GAMESS_VERSION {ncpus} > name.log")
	case "mgs":
		lines := []string{
			"#!/bin/bash -l",
			"#SBATCH --nodes=1",
			"#SBATCH --time={time}",
			"#SBATCH --export=NONE",
		}
		if engine == PSI4 {
			return append(lines,
				"module load psi4",
				"srun psi4 -i name.inp -o name.out")
		}
		return append(lines,
			"module load gamess",
			"srun gamess name.inp > name.log")
	case "gaia":
		return []string{
			"#!/bin/bash",
			"#SBATCH --time={time}",
			"#SBATCH --ntasks={ncpus}",
			"#SBATCH --mem={mem}",
			"module load gamess",
			"mpirun gamess name.inp > name.log",
		}
	case "mon":
		lines := []string{
			"#!/bin/bash",
			"#SBATCH --job-name=base_name",
			"#SBATCH --time={time}",
			"#SBATCH --ntasks={ncpus}",
			"#SBATCH --mem={mem}",
			"#SBATCH --qos=partner",
		}
		if engine == PSI4 {
			return append(lines,
				"module load psi4",
				"psi4 -i base_name.inp -o base_name.out")
		}
		return append(lines,
			"module load gamess",
			"rungms base_name.inp > base_name.log")
	}
	return nil
}

//MakeScript renders the submission script for one job on one machine:
//the machine's head with the resource tokens filled from res and the job
//name token replaced with baseName.
func MakeScript(engine Engine, supercomp, baseName string, res Resources) (string, error) {
	sc, err := ResolveSupercomp(supercomp)
	if err != nil {
		return "", err
	}
	script := strings.Join(scriptHead(engine, sc), "\n") + "\n"
	//the name token goes first, so the bare "name" substitution cannot
	//touch resource values that happen to contain it
	if sc == "mon" {
		script = strings.ReplaceAll(script, "base_name", baseName)
	} else {
		script = strings.ReplaceAll(script, "name", baseName)
	}
	replacer := strings.NewReplacer(
		"{time}", res.Time,
		"{mem}", res.Mem,
		"{jobfs}", res.Jobfs,
		"{ncpus}", res.Ncpus,
	)
	return replacer.Replace(script), nil
}

//WriteScript renders the submission script and writes it as filename,
//executable.
func WriteScript(filename string, engine Engine, supercomp, baseName string, res Resources) error {
	script, err := MakeScript(engine, supercomp, baseName, res)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, []byte(script), 0755)
}
