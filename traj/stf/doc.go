/*
 * doc.go, part of gotraj.
 *
 * Copyright 2021 Raul Mera <rauldotmeraatusachdotcl>
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

/*
Package stf implements the simple trajectory format, a compact archive format
for native trajectories. It is plain ASCII, compressed with z-standard
(or gzip, for file names ending in "z").

The file starts with a header of key=value lines, which always includes the
precision ("prec"), and ends with a line "** N", N being the number of atoms
per frame.

Each frame has one line per atom with the x, y and z coordinates in Angstrom,
multiplied by 10 to the power of the precision and rounded to integers.
A frame ends with a line starting with "*", optionally followed by the 3 box
lengths and the 3 box angles.
*/
package stf
