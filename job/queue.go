/*
 * queue.go, part of chemassist.
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
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	chem "github.com/tmason/chemassist"
	"github.com/tmason/chemassist/qm"
)

//Engine selects the electronic structure program a request builds input
//for.
type Engine int

const (
	GAMESS Engine = iota
	PSI4
)

//BuildRequest is one queued sub-job: a sub-molecule, the directory it
//builds into (relative to the queue root), and the settings it inherits
//from its parent with charge and multiplicity already overridden.
type BuildRequest struct {
	Name     string
	Dir      string
	Mol      *chem.Molecule
	Settings *qm.Settings
	Engine   Engine
}

//Queue is a FIFO work queue of build requests. Sub-jobs are queued and
//drained in order rather than built by recursive descent, so the build
//order is explicit: fragments by ascending first atom, the ionic network
//last.
type Queue struct {
	reqs []*BuildRequest
}

func (Q *Queue) Len() int {
	return len(Q.reqs)
}

func (Q *Queue) Push(r *BuildRequest) {
	Q.reqs = append(Q.reqs, r)
}

//Pop removes and returns the oldest request, or nil on an empty queue.
func (Q *Queue) Pop() *BuildRequest {
	if len(Q.reqs) == 0 {
		return nil
	}
	r := Q.reqs[0]
	Q.reqs = Q.reqs[1:]
	return r
}

//FragmentRequests separates mol and queues one build request per
//fragment under frags/<name>/, then one for the ionic network under
//ionic/ when one was found. Each request carries a private copy of the
//parent settings with the fragment's charge and multiplicity written
//in; everything else is inherited. hint is the expected number of
//chemical units, 0 if unknown.
func FragmentRequests(mol *chem.Molecule, parent *qm.Settings, hint int, engine Engine) (*Queue, error) {
	frags, err := mol.Separate(hint)
	if err != nil {
		return nil, err
	}
	ordered := make([]*chem.Fragment, 0, len(frags))
	for _, f := range frags {
		ordered = append(ordered, f)
	}
	sort.Slice(ordered, func(i, j int) bool {
		fi, fj := ordered[i], ordered[j]
		//the ionic network always builds last
		if (fi.Type == chem.FragTypeIonic) != (fj.Type == chem.FragTypeIonic) {
			return fj.Type == chem.FragTypeIonic
		}
		return fi.First() < fj.First()
	})
	q := new(Queue)
	for _, f := range ordered {
		sub, err := mol.SubMolecule(f)
		if err != nil {
			return nil, err
		}
		dir := filepath.Join("frags", f.Name)
		if f.Type == chem.FragTypeIonic {
			dir = "ionic"
		}
		q.Push(&BuildRequest{
			Name:     f.Name,
			Dir:      dir,
			Mol:      sub,
			Settings: overrideChargeMult(parent, f, engine),
			Engine:   engine,
		})
	}
	return q, nil
}

//overrideChargeMult copies the parent settings and writes the fragment's
//charge and multiplicity into the engine's own option paths. The
//multiplicity is only written when it differs from the singlet default.
func overrideChargeMult(parent *qm.Settings, f *chem.Fragment, engine Engine) *qm.Settings {
	s := parent.Copy()
	if s == nil {
		s = qm.NewSettings()
	}
	switch engine {
	case PSI4:
		s.Set(strconv.Itoa(f.Charge), "input", "molecule", "charge")
		if f.Multiplicity != 1 {
			s.Set(strconv.Itoa(f.Multiplicity), "input", "molecule", "multiplicity")
		}
	default:
		s.Set(strconv.Itoa(f.Charge), "input", "contrl", "icharg")
		if f.Multiplicity != 1 {
			s.Set(strconv.Itoa(f.Multiplicity), "input", "contrl", "mult")
		}
	}
	return s
}

//Build drains the queue, creating each request's directory under root,
//writing the fragment geometry as <name>.xyz and building the input deck
//next to it with the run-type default base name. Building stops at the
//first failed request; the queue keeps the remaining requests so the
//caller can inspect what was left undone.
func (Q *Queue) Build(root string) error {
	for Q.Len() > 0 {
		r := Q.reqs[0]
		dir := filepath.Join(root, r.Dir)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("Queue.Build: %v", err)
		}
		if err := chem.XYZWrite(r.Mol, filepath.Join(dir, r.Name+".xyz")); err != nil {
			return err
		}
		h := r.handle()
		h.SetName(filepath.Join(dir, r.stem()))
		if err := h.BuildInput(r.Mol, r.Settings); err != nil {
			return err
		}
		Q.Pop()
	}
	return nil
}

func (r *BuildRequest) handle() qm.Handle {
	if r.Engine == PSI4 {
		return qm.NewPsiHandle()
	}
	return qm.NewGamessHandle()
}

//stem resolves the input base name the same way the handle will: from the
//run type of the request's settings merged over the engine defaults.
func (r *BuildRequest) stem() string {
	if r.Engine == PSI4 {
		//a user-supplied run mapping replaces the default outright, so
		//the two are never unioned here either
		run := r.Settings.Child("input").Child("run")
		if run == nil {
			run = qm.DefaultPsiSettings().Child("input").Child("run")
		}
		for _, k := range run.Keys() {
			if k != "additional" {
				return qm.RuntypeStem(k)
			}
		}
		return qm.RuntypeStem("")
	}
	merged := qm.DefaultGamessSettings().Merge(r.Settings)
	runtype, _ := merged.Get("input", "contrl", "runtyp")
	return qm.RuntypeStem(runtype)
}
