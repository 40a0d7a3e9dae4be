/*
 * settings_test.go, part of chemassist.
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
	"reflect"
	"testing"

	yaml "gopkg.in/yaml.v3"
)

func TestSettingsOrderAndRawScalars(t *testing.T) {
	doc := `input:
  contrl:
    runtyp: energy
    ispher: 1
  scf:
    dirscf: .TRUE.
  mp2:
    scsopo: 1.752
`
	s := NewSettings()
	if err := yaml.Unmarshal([]byte(doc), s); err != nil {
		t.Fatal(err)
	}
	input := s.Child("input")
	if input == nil {
		t.Fatal("no input section decoded")
	}
	wantKeys := []string{"contrl", "scf", "mp2"}
	if !reflect.DeepEqual(input.Keys(), wantKeys) {
		t.Errorf("key order not preserved: got %v, want %v", input.Keys(), wantKeys)
	}
	//scalars must keep their source text: .TRUE. is not a YAML bool and
	//1.752 must not be reformatted
	if v, _ := s.Get("input", "scf", "dirscf"); v != ".TRUE." {
		t.Errorf("dirscf: got %q, want .TRUE.", v)
	}
	if v, _ := s.Get("input", "mp2", "scsopo"); v != "1.752" {
		t.Errorf("scsopo: got %q, want 1.752", v)
	}
}

func TestSettingsMerge(t *testing.T) {
	defaults := DefaultGamessSettings()
	user := NewSettings()
	user.Set("cct", "input", "basis", "gbasis")
	user.Set("energy", "input", "contrl", "runtyp")
	user.Set("1", "input", "contrl", "mult")

	merged := defaults.Merge(user)
	//user wins
	if v, _ := merged.Get("input", "basis", "gbasis"); v != "cct" {
		t.Errorf("gbasis: got %q, want cct", v)
	}
	if v, _ := merged.Get("input", "contrl", "runtyp"); v != "energy" {
		t.Errorf("runtyp: got %q, want energy", v)
	}
	//untouched defaults survive
	if v, _ := merged.Get("input", "scf", "dirscf"); v != ".TRUE." {
		t.Errorf("dirscf default lost: got %q", v)
	}
	if v, _ := merged.Get("input", "contrl", "maxit"); v != "200" {
		t.Errorf("maxit default lost: got %q", v)
	}
	//new user keys are added
	if v, _ := merged.Get("input", "contrl", "mult"); v != "1" {
		t.Errorf("mult: got %q, want 1", v)
	}
	//defaults must not have been mutated by the merge
	if v, _ := defaults.Get("input", "basis", "gbasis"); v != "CCD" {
		t.Errorf("defaults mutated: gbasis now %q", v)
	}
	if defaults.Has("input", "contrl", "mult") {
		t.Error("defaults mutated: user key leaked into defaults")
	}
}

func TestSettingsMergeIsolation(t *testing.T) {
	defaults := DefaultGamessSettings()
	a := defaults.Merge(nil)
	b := defaults.Merge(nil)
	a.Set("999", "input", "contrl", "maxit")
	if v, _ := b.Get("input", "contrl", "maxit"); v != "200" {
		t.Errorf("merged copies share state: got %q, want 200", v)
	}
}

func TestReadSettingsMalformed(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("input:\n  - a\n  - b\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := ReadSettings(bad)
	if err == nil {
		t.Fatal("expected error for malformed settings")
	}
	if _, ok := err.(*ConfigurationError); !ok {
		t.Errorf("expected *ConfigurationError, got %T", err)
	}
}
