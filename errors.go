/*
 * errors.go, part of chemassist.
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

package chem

// Error is the interface for errors that all packages in this library
// implement. The Decorate method allows to add and retrieve info from the
// error, without changing its type or wrapping it around something else.
type Error interface {
	Error() string
	//Decorate adds information to the error as it is passed up the calling
	//stack, and returns the current decoration slice. If passed an empty
	//string it only returns the current value. Each element should be a
	//function in the calling stack, optionally as "FunctionName: Extra info".
	Decorate(string) []string
}

// CError is the concrete error type for the library. It implements Error.
type CError struct {
	msg  string
	deco []string
}

func (err *CError) Error() string { return err.msg }

func (err *CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// errDecorate decorates err if it implements the Error interface,
// and returns it unchanged otherwise.
func errDecorate(err error, info string) error {
	err2, ok := err.(Error)
	if ok {
		err2.Decorate(info)
		return err2
	}
	return err
}

// FragmentationError is returned when the fragment boundaries of a molecule
// cannot be determined, either because a chemical unit could not be matched
// to a known species or because the number of units found disagrees with the
// number requested. It is never recovered from silently: the caller must
// supply an explicit fragment count or fix the geometry.
type FragmentationError struct {
	CError
}

// NewFragmentationError returns a FragmentationError with the given message.
func NewFragmentationError(msg string) *FragmentationError {
	return &FragmentationError{CError{msg: msg}}
}
