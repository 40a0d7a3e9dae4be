/*
 * plot.go, part of chemassist.
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

package interactions

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//family colors cycle through a small fixed palette
func familyColor(i int) color.RGBA {
	palette := []color.RGBA{
		{R: 31, G: 119, B: 180, A: 255},
		{R: 255, G: 127, B: 14, A: 255},
		{R: 44, G: 160, B: 44, A: 255},
		{R: 214, G: 39, B: 40, A: 255},
		{R: 148, G: 103, B: 189, A: 255},
	}
	return palette[i%len(palette)]
}

//PlotRanks writes a scatter plot of the ranked correlated totals, one
//series per cation-anion family, to plotname (a .png name). The input
//must already be ranked.
func PlotRanks(ranked []*Config, plotname string) error {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = "Ranked interaction energies"
	p.X.Label.Text = "Rank"
	p.Y.Label.Text = "Total Int_MP2 [kJ/mol]"
	p.Add(plotter.NewGrid())

	families := make(map[string]plotter.XYs)
	var order []string
	for _, c := range ranked {
		name := c.Cation + "/" + c.Anion
		if _, ok := families[name]; !ok {
			order = append(order, name)
		}
		families[name] = append(families[name], plotter.XY{X: float64(c.Rank), Y: c.TotalMP2})
	}
	for i, name := range order {
		s, err := plotter.NewScatter(families[name])
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = familyColor(i)
		s.GlyphStyle.Radius = vg.Points(3)
		p.Add(s)
		p.Legend.Add(name, s)
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, plotname)
}
