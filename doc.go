/*
 * doc.go, part of gotraj.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
Package traj is the main package of gotraj. It provides the native Topology,
Frame and Trajectory types used to exchange molecular systems with the
cpptraj analysis engine and with foreign structure libraries.

	**gotraj Capabilities**

    Topologies (atoms, residues, bonds and periodic box) that are immutable
	once built.

    Trajectories with a number of frames and atoms fixed at allocation.
	Coordinates can be updated in bulk, as long as the shape matches.

    Frames with element-wise arithmetic against scalars or other frames,
	either returning a new frame or in place.

    Converts foreign structures to and from the native types (package interop).

    Reads and writes Amber parm7 topologies (package prmtop) and Amber ASCII
	(traj/crd), Charmm/NAMD DCD (traj/dcd) and goChem STF (traj/stf) trajectories.

    Runs hydrogen bond searches through cpptraj (packages hbond and cpptraj)
	and shapes the resulting data sets into lists, gonum matrices, data frames
	or maps (package dataset).
*/
package traj
