/*
 * psi_test.go, part of chemassist.
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
	"path/filepath"
	"strings"
	"testing"

	yaml "gopkg.in/yaml.v3"
)

func userFromYAML(t *testing.T, doc string) *Settings {
	t.Helper()
	s := NewSettings()
	if err := yaml.Unmarshal([]byte(doc), s); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestPsiDefaultDeck(t *testing.T) {
	deck := buildDeck(t, NewPsiHandle(), water(t), NewSettings())
	for _, want := range []string{
		"# PSI4 Calc: water\n",
		"memory 32 Gb\n",
		"molecule complex {\n0 1\n",
		"units angstrom\n",
		"no_reorient\n",
		"symmetry c1\n",
		"set globals {\n",
		"    basis cc-pVTZ\n",
		"    freeze_core True\n",
		"\nenergy('mp2')",
	} {
		if !strings.Contains(deck, want) {
			t.Errorf("deck missing %q:\n%s", want, deck)
		}
	}
	//the run directive closes the deck
	if !strings.HasSuffix(deck, "energy('mp2')") {
		t.Errorf("run directive is not last:\n%s", deck)
	}
}

func TestPsiRunReplacesDefault(t *testing.T) {
	user := userFromYAML(t, `input:
  run:
    optimize: scf
    additional:
      dertype: energy
      frequency: "1"
`)
	deck := buildDeck(t, NewPsiHandle(), water(t), user)
	//additional arguments keep their declaration order, and the default
	//run type is gone: one deck, one run
	if !strings.Contains(deck, "optimize('scf', dertype='energy', frequency='1')") {
		t.Errorf("run directive wrong:\n%s", deck)
	}
	if strings.Contains(deck, "energy('mp2')") {
		t.Errorf("default run survived a user run:\n%s", deck)
	}
}

func TestPsiRunOnlyAdditional(t *testing.T) {
	user := userFromYAML(t, `input:
  run:
    additional:
      dertype: energy
`)
	h := NewPsiHandle()
	h.SetName(filepath.Join(t.TempDir(), "job"))
	err := h.BuildInput(water(t), user)
	if err == nil {
		t.Fatal("expected an error for a run mapping without a run keyword")
	}
	if _, ok := err.(*ConfigurationError); !ok {
		t.Errorf("expected *ConfigurationError, got %T", err)
	}
}

func TestPsiMoleculeExtras(t *testing.T) {
	user := userFromYAML(t, `input:
  molecule:
    charge: 1
    pubchem: "0"
`)
	deck := buildDeck(t, NewPsiHandle(), water(t), user)
	if !strings.Contains(deck, "molecule complex {\n1 1\n") {
		t.Errorf("charge override lost:\n%s", deck)
	}
	//non-standard molecule keys go before the closing brace
	if !strings.Contains(deck, "pubchem 0\n}") {
		t.Errorf("extra molecule key misplaced:\n%s", deck)
	}
}
