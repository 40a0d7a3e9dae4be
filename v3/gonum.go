/*
 * gonum.go, part of chemassist.
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

//Package v3 implements a container for 3D coordinates, backed by a gonum
//Dense matrix constrained to 3 columns. One row per atom.
package v3

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

//Matrix is a set of vectors in 3D space, one per row.
type Matrix struct {
	*mat.Dense
}

//Zeros returns a zero-filled Matrix with vecs vectors.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

//NewMatrix creates and returns a Matrix with 3 columns from data.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, fmt.Errorf("Input slice length %d not divisible by %d", l, cols)
	}
	r := mat.NewDense(rows, cols, data)
	return &Matrix{r}, nil
}

//VecView returns a view of the ith vector of the receiver.
//Changes in the view are reflected in the receiver.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

//View returns a view of the receiver from row i, for r rows.
func (F *Matrix) View(i, r int) *Matrix {
	ret := F.Slice(i, i+r, 0, 3).(*mat.Dense)
	return &Matrix{ret}
}

//Row fills the given slice, or a new one if nil, with the ith row
//of the receiver, and returns it.
func (F *Matrix) Row(dst []float64, i int) []float64 {
	return mat.Row(dst, i, F.Dense)
}

//NVecs returns the number of vectors in the receiver.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3)
	}
	return r
}

//Sub subtracts B from A, putting the result in the receiver.
func (F *Matrix) Sub(A, B *Matrix) {
	F.Dense.Sub(A.Dense, B.Dense)
}

//Add adds A and B, putting the result in the receiver.
func (F *Matrix) Add(A, B *Matrix) {
	F.Dense.Add(A.Dense, B.Dense)
}

//Norm returns the norm of the receiver. Only the Euclidean norm
//(norm 2) is supported.
func (F *Matrix) Norm(i float64) float64 {
	return mat.Norm(F.Dense, i)
}

//Copy copies A into the receiver. The dimensions must match, or
//Copy panics.
func (F *Matrix) Copy(A *Matrix) {
	ar, ac := A.Dims()
	fr, fc := F.Dims()
	if ar != fr || ac != fc {
		panic(ErrShape)
	}
	F.Dense.Copy(A.Dense)
}

//Errors for this package. Kept as strings to avoid a circular
//import with the error types of the parent package.
const (
	ErrNotXx3 = "v3 Matrix must have 3 columns"
	ErrShape  = "Inconsistent shape for the operation"
)
