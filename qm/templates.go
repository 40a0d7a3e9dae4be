/*
 * templates.go, part of chemassist.
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
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed templates/*.yaml
var templateFS embed.FS

//readTemplate loads one of the embedded default-settings templates. A
//missing or malformed template is a programming error, so this panics.
func readTemplate(name string) *Settings {
	data, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		panic(fmt.Sprintf("default template %s missing: %v", name, err))
	}
	s := NewSettings()
	if err := yaml.Unmarshal(data, s); err != nil {
		panic(fmt.Sprintf("default template %s malformed: %v", name, err))
	}
	return s
}

//DefaultGamessSettings returns a fresh copy of the GAMESS defaults:
//geometry optimisation at SRS-MP2/cc-pVDZ.
func DefaultGamessSettings() *Settings {
	return readTemplate("gamess.yaml")
}

//DefaultPsiSettings returns a fresh copy of the PSI4 defaults: single
//point MP2/cc-pVTZ with frozen core.
func DefaultPsiSettings() *Settings {
	return readTemplate("psi.yaml")
}
