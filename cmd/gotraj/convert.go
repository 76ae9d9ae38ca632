/*
 * convert.go, part of gotraj.
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

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	traj "github.com/rmera/gotraj"
	"github.com/rmera/gotraj/interop"
	"github.com/rmera/gotraj/prmtop"
	"github.com/spf13/cobra"
)

func (a *app) convertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <structure> <output>",
		Short: "Convert a structure to a parm7 topology or a JSON structure",
		Long: `Convert reads a JSON structure or a parm7 topology and writes it as a parm7
topology (.parm7, .prmtop) or a JSON structure (.json). The coordinates, taken from
the structure or from --coords, can also be written as a trajectory with --traj.`,
		Args: cobra.ExactArgs(2),
		RunE: a.runConvert,
	}
	cmd.Flags().String("coords", "", "Trajectory (.stf, .stz, .crd, .mdcrd, .dcd) with the coordinates of the structure")
	cmd.Flags().String("traj", "", "Write the coordinates to this trajectory file (.stf, .stz, .crd, .mdcrd, .dcd)")
	cmd.Flags().Bool("verify", false, "Check that the topology survives a round trip through a parm7 file")
	return cmd
}

func (a *app) runConvert(cmd *cobra.Command, args []string) error {
	coords, _ := cmd.Flags().GetString("coords")
	trajOut, _ := cmd.Flags().GetString("traj")
	verify, _ := cmd.Flags().GetBool("verify")

	s, err := loadStructure(args[0])
	if err != nil {
		return err
	}
	top, err := interop.ToTopology(s)
	if err != nil {
		return err
	}
	var t *traj.Trajectory
	switch {
	case coords != "":
		t, err = readTrajectory(coords, top)
	case s.Coordinates() != nil:
		t, err = interop.ToTrajectory(s)
	}
	if err != nil {
		return err
	}
	if verify {
		if err := a.verify(top, s); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Round trip through parm7 preserved %d atoms, %d residues and %d bonds\n", top.Len(), top.NResidues(), top.NBonds())
	}

	out := args[1]
	switch strings.ToLower(filepath.Ext(out)) {
	case ".parm7", ".prmtop":
		err = prmtop.WriteFile(out, top)
	case ".json":
		err = writeRecord(out, top, t)
	default:
		err = fmt.Errorf("unknown output format for %s, use .parm7, .prmtop or .json", out)
	}
	if err != nil {
		return err
	}
	log.Debugf("Wrote %s", out)

	if trajOut != "" {
		if t == nil {
			return fmt.Errorf("%s has no coordinates, use --coords to give a trajectory", args[0])
		}
		if err := a.writeTrajectory(trajOut, t); err != nil {
			return err
		}
		log.Debugf("Wrote %d frames to %s", t.LenFrames(), trajOut)
	}
	return nil
}

//verify sends top through a parm7 file and compares what is read back with s.
func (a *app) verify(top *traj.Topology, s interop.Structure) error {
	C := interop.NewConverter(interop.ParmLoader{}, interop.WithTempDir(a.cfg.TempDir), interop.WithName("parm7"))
	f, err := C.ToForeign(top)
	if err != nil {
		return err
	}
	if f.NumAtoms() != s.NumAtoms() || len(f.Bonds()) != len(s.Bonds()) {
		return fmt.Errorf("round trip changed the structure: %d atoms and %d bonds, expected %d and %d", f.NumAtoms(), len(f.Bonds()), s.NumAtoms(), len(s.Bonds()))
	}
	return nil
}

func writeRecord(name string, top *traj.Topology, t *traj.Trajectory) error {
	R := interop.FromTopology(top)
	if t != nil {
		R = interop.FromTrajectory(t)
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := R.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
