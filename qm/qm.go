/*
 * qm.go, part of chemassist.
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

//Package qm builds input decks for quantum-chemistry programs from a
//molecule and a settings tree, and parses the log files those programs
//produce. It never runs the programs themselves.
package qm

import (
	chem "github.com/tmason/chemassist"
)

//Handle is implemented by each supported QM program's input builder.
type Handle interface {

	//SetName sets the base name for the job, used for input and output
	//files. The extensions depend on the program. An empty name selects a
	//default derived from the run type.
	SetName(name string)

	//Name returns the base name the last BuildInput call wrote, including
	//a run-type default if none was set.
	Name() string

	//BuildInput writes an input deck for mol using the given user
	//settings merged over the program's defaults. Returns only error.
	BuildInput(mol *chem.Molecule, settings *Settings) error
}

//Base-name stems by run type. The caller may override with an explicit
//name.
var runtypeStems = map[string]string{
	"optimize":  "opt",
	"energy":    "spec",
	"hessian":   "hess",
	"frequency": "hess",
}

//stemFor returns the file stem for a run type, falling back to "file" for
//anything unrecognized.
func stemFor(runtype string) string {
	if stem, ok := runtypeStems[runtype]; ok {
		return stem
	}
	return "file"
}

//RuntypeStem returns the default base name for a run type: opt for
//optimizations, spec for single points, hess for hessian or frequency
//runs, and "file" for anything unrecognized.
func RuntypeStem(runtype string) string {
	return stemFor(runtype)
}

//qmError is the concrete base for the error types of this package. It
//implements the library Error interface.
type qmError struct {
	msg  string
	deco []string
}

func (e *qmError) Error() string { return e.msg }

func (e *qmError) Decorate(dec string) []string {
	if dec != "" {
		e.deco = append(e.deco, dec)
	}
	return e.deco
}

//ConfigurationError means the options given for a job are malformed or
//ambiguous, such as a missing run directive. The job must halt; nothing is
//guessed.
type ConfigurationError struct {
	qmError
}

//NewConfigurationError returns a ConfigurationError with the given message.
func NewConfigurationError(msg string) *ConfigurationError {
	return &ConfigurationError{qmError{msg: msg}}
}

//LogParseError means an expected marker was absent from an otherwise
//well-formed log. It is recoverable: the run is reported as incomplete
//rather than raised to the caller as fatal.
type LogParseError struct {
	qmError
}

//NewLogParseError returns a LogParseError with the given message.
func NewLogParseError(msg string) *LogParseError {
	return &LogParseError{qmError{msg: msg}}
}

//RecoveryWriteError means the rerun artifacts for a non-converged
//calculation could not be written. It is surfaced, not retried.
type RecoveryWriteError struct {
	qmError
}

//NewRecoveryWriteError returns a RecoveryWriteError with the given message.
func NewRecoveryWriteError(msg string) *RecoveryWriteError {
	return &RecoveryWriteError{qmError{msg: msg}}
}

//compile-time checks that the package error types implement the library
//Error interface.
var _ chem.Error = &ConfigurationError{}
var _ chem.Error = &LogParseError{}
var _ chem.Error = &RecoveryWriteError{}
