/*
 * job_test.go, part of chemassist.
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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	chem "github.com/tmason/chemassist"
	"github.com/tmason/chemassist/qm"
	v3 "github.com/tmason/chemassist/v3"
)

//two waters and a sodium chloride pair, separated by large gaps
func cluster(t *testing.T) *chem.Molecule {
	t.Helper()
	ats := []*chem.Atom{
		{Symbol: "O"}, {Symbol: "H"}, {Symbol: "H"},
		{Symbol: "O"}, {Symbol: "H"}, {Symbol: "H"},
		{Symbol: "Na"}, {Symbol: "Cl"},
	}
	coords, err := v3.NewMatrix([]float64{
		0.0, 0.0, 0.0,
		0.96, 0.0, 0.0,
		-0.24, 0.93, 0.0,
		10.0, 0.0, 0.0,
		10.96, 0.0, 0.0,
		9.76, 0.93, 0.0,
		20.0, 0.0, 0.0,
		22.4, 0.0, 0.0,
	})
	require.NoError(t, err)
	mol, err := chem.NewMolecule(ats, coords)
	require.NoError(t, err)
	mol.Name = "cluster"
	return mol
}

func TestPlaceComplex(t *testing.T) {
	root := t.TempDir()
	xyz := filepath.Join(root, "cluster.xyz")
	require.NoError(t, os.WriteFile(xyz, []byte("1\n\nO 0.0 0.0 0.0\n"), 0644))
	inp := filepath.Join(root, "spec.inp")
	require.NoError(t, os.WriteFile(inp, []byte("deck"), 0644))

	dest, err := Place(root, "spec", true, xyz, inp)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "complex", "spec"), dest)
	//the geometry is copied once, the artifacts are moved
	assert.FileExists(t, filepath.Join(root, "complex", "complex.xyz"))
	assert.FileExists(t, filepath.Join(dest, "spec.inp"))
	assert.NoFileExists(t, inp)

	//a second placement into the same complex must not clobber the
	//geometry already there
	other := filepath.Join(root, "other.xyz")
	require.NoError(t, os.WriteFile(other, []byte("different"), 0644))
	_, err = Place(root, "opt", true, other)
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(root, "complex", "complex.xyz"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "O 0.0 0.0 0.0")
}

func TestPlacePlain(t *testing.T) {
	root := t.TempDir()
	inp := filepath.Join(root, "opt.inp")
	require.NoError(t, os.WriteFile(inp, []byte("deck"), 0644))
	dest, err := Place(root, "opt", false, "", inp)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "opt"), dest)
	assert.FileExists(t, filepath.Join(dest, "opt.inp"))
	//placing again into the existing directory is fine
	_, err = Place(root, "opt", false, "")
	assert.NoError(t, err)
}

func TestFragmentRequestsOrder(t *testing.T) {
	mol := cluster(t)
	user := qm.NewSettings()
	user.Set("energy", "input", "contrl", "runtyp")
	q, err := FragmentRequests(mol, user, 0, GAMESS)
	require.NoError(t, err)
	require.Equal(t, 3, q.Len())

	var names, dirs []string
	var charges []string
	for q.Len() > 0 {
		r := q.Pop()
		names = append(names, r.Name)
		dirs = append(dirs, r.Dir)
		c, _ := r.Settings.Get("input", "contrl", "icharg")
		charges = append(charges, c)
	}
	assert.Equal(t, []string{"water0", "water1", "ionic"}, names)
	assert.Equal(t, []string{filepath.Join("frags", "water0"), filepath.Join("frags", "water1"), "ionic"}, dirs)
	assert.Equal(t, []string{"0", "0", "0"}, charges)
	//the parent settings stay untouched by the per-fragment overrides
	assert.False(t, user.Has("input", "contrl", "icharg"))
}

func TestQueueBuild(t *testing.T) {
	root := t.TempDir()
	mol := cluster(t)
	user := qm.NewSettings()
	user.Set("energy", "input", "contrl", "runtyp")
	q, err := FragmentRequests(mol, user, 0, GAMESS)
	require.NoError(t, err)
	require.NoError(t, q.Build(root))
	assert.Equal(t, 0, q.Len())

	assert.FileExists(t, filepath.Join(root, "frags", "water0", "water0.xyz"))
	assert.FileExists(t, filepath.Join(root, "frags", "water0", "spec.inp"))
	assert.FileExists(t, filepath.Join(root, "frags", "water1", "spec.inp"))
	assert.FileExists(t, filepath.Join(root, "ionic", "ionic.xyz"))
	assert.FileExists(t, filepath.Join(root, "ionic", "spec.inp"))

	deck, err := os.ReadFile(filepath.Join(root, "frags", "water0", "spec.inp"))
	require.NoError(t, err)
	assert.Contains(t, string(deck), "ICHARG=0")
	assert.Contains(t, string(deck), "RUNTYP=ENERGY")
}

func TestFragmentChargeOverride(t *testing.T) {
	//water plus a lone sodium cation: the sodium sub-job must carry its
	//own charge
	ats := []*chem.Atom{
		{Symbol: "O"}, {Symbol: "H"}, {Symbol: "H"},
		{Symbol: "Na"},
	}
	coords, err := v3.NewMatrix([]float64{
		0.0, 0.0, 0.0,
		0.96, 0.0, 0.0,
		-0.24, 0.93, 0.0,
		15.0, 0.0, 0.0,
	})
	require.NoError(t, err)
	mol, err := chem.NewMolecule(ats, coords)
	require.NoError(t, err)
	mol.Name = "hydrated"
	mol.SetCharge(1)

	q, err := FragmentRequests(mol, qm.NewSettings(), 0, GAMESS)
	require.NoError(t, err)
	require.Equal(t, 2, q.Len())
	q.Pop() //water0
	na := q.Pop()
	assert.Equal(t, "sodium1", na.Name)
	c, _ := na.Settings.Get("input", "contrl", "icharg")
	assert.Equal(t, "1", c)
}

func TestMakeScript(t *testing.T) {
	res := Resources{Time: "4:00:00", Mem: "64gb", Jobfs: "20gb", Ncpus: "32"}
	script, err := MakeScript(GAMESS, "raijin", "spec", res)
	require.NoError(t, err)
	assert.Contains(t, script, "#PBS -l walltime=4:00:00")
	assert.Contains(t, script, "#PBS -l ncpus=32")
	assert.Contains(t, script, "#PBS -l mem=64gb")
	assert.Contains(t, script, "#PBS -l jobfs=20gb")
	assert.Contains(t, script, "spec.inp")
	assert.NotContains(t, script, "{time}")
	assert.NotContains(t, script, "base_name")
}

func TestMakeScriptResourceKeepsNameToken(t *testing.T) {
	//a resource value containing the bare name token must come through
	//untouched by the job-name substitution
	res := Resources{Time: "4:00:00", Mem: "hostname64gb", Jobfs: "10gb", Ncpus: "16"}
	script, err := MakeScript(GAMESS, "raijin", "spec", res)
	require.NoError(t, err)
	assert.Contains(t, script, "#PBS -l mem=hostname64gb")
	assert.Contains(t, script, "rungms spec.inp")
}

func TestMakeScriptMonarch(t *testing.T) {
	res := ResourcesFrom(nil)
	script, err := MakeScript(GAMESS, "monarch", "opt", res)
	require.NoError(t, err)
	assert.Contains(t, script, "#SBATCH --job-name=opt")
	assert.Contains(t, script, "opt.inp")
	//defaults come from the job template
	assert.Contains(t, script, "--time=2:00:00")
}

func TestResolveSupercomp(t *testing.T) {
	for in, want := range map[string]string{
		"raijin": "rjn", "rjn": "rjn",
		"magnus": "mgs", "MGS": "mgs",
		"gaia": "gaia",
		"monarch": "mon", "mon": "mon",
	} {
		got, err := ResolveSupercomp(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ResolveSupercomp("fugaku")
	require.Error(t, err)
	assert.IsType(t, &qm.ConfigurationError{}, err)
}
