/*
 * placer.go, part of chemassist.
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

//Package job places calculation artifacts in their directory layout,
//builds the sub-job work queue for fragments and writes submission
//scripts for the supported supercomputers.
package job

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

//Place puts the generated files of one job where they belong under root.
//A complex job gets complex/<baseName>/, and on the first call for a new
//complex the originating geometry is copied to complex/complex.xyz; any
//other job gets <baseName>/. Directory creation is idempotent, so a job
//can be placed into an existing layout. Returns the destination
//directory.
func Place(root, baseName string, isComplex bool, geometry string, files ...string) (string, error) {
	dest := filepath.Join(root, baseName)
	if isComplex {
		cdir := filepath.Join(root, "complex")
		if err := os.MkdirAll(cdir, 0755); err != nil {
			return "", fmt.Errorf("Place: %v", err)
		}
		if geometry != "" {
			target := filepath.Join(cdir, "complex.xyz")
			if _, err := os.Stat(target); os.IsNotExist(err) {
				if err := copyFile(geometry, target); err != nil {
					return "", fmt.Errorf("Place: %v", err)
				}
			}
		}
		dest = filepath.Join(cdir, baseName)
	}
	if err := os.MkdirAll(dest, 0755); err != nil {
		return "", fmt.Errorf("Place: %v", err)
	}
	for _, f := range files {
		if err := moveFile(f, filepath.Join(dest, filepath.Base(f))); err != nil {
			return "", fmt.Errorf("Place: %v", err)
		}
	}
	return dest, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

//moveFile renames src to dst, copying and deleting when the rename
//crosses filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}
