/*
 * config.go, part of gotraj.
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

	"github.com/rmera/gotraj/dataset"
	"gopkg.in/yaml.v3"
)

//Config holds the settings that can be given in the YAML configuration file.
//Command line flags take precedence over them.
type Config struct {
	Cpptraj      string  `yaml:"cpptraj"`       //name or path of the cpptraj program
	TempDir      string  `yaml:"temp_dir"`      //where scratch directories are created
	DType        string  `yaml:"dtype"`         //container for the results
	UpdateLegend bool    `yaml:"update_legend"` //canonicalize legends
	Precision    int     `yaml:"precision"`     //decimal places kept in STF trajectories
	TimeStep     float64 `yaml:"timestep"`      //time between frames, for plots and lifetimes
	Verbose      bool    `yaml:"verbose"`
}

//DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Cpptraj:   "cpptraj",
		DType:     dataset.DataFrame.String(),
		Precision: 3,
		TimeStep:  1,
	}
}

//LoadConfig reads the YAML file name. Settings missing from the file keep their
//default values.
func LoadConfig(name string) (*Config, error) {
	C := DefaultConfig()
	if name == "" {
		return C, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}
	if err := yaml.Unmarshal(data, C); err != nil {
		return nil, fmt.Errorf("parsing configuration %s: %w", name, err)
	}
	if err := C.Check(); err != nil {
		return nil, fmt.Errorf("configuration %s: %w", name, err)
	}
	return C, nil
}

//Check returns an error if a setting is out of range.
func (C *Config) Check() error {
	if _, err := dataset.ParseDType(C.DType); err != nil {
		return err
	}
	if C.Cpptraj == "" {
		return fmt.Errorf("the cpptraj program can't be empty")
	}
	if C.Precision < 1 || C.Precision > 6 {
		return fmt.Errorf("precision must be between 1 and 6, got %d", C.Precision)
	}
	if C.TimeStep <= 0 {
		return fmt.Errorf("timestep must be positive, got %g", C.TimeStep)
	}
	return nil
}
