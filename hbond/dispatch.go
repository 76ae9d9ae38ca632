/*
 * dispatch.go, part of gotraj.
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

package hbond

import (
	"sort"
	"sync"

	traj "github.com/rmera/gotraj"
	"github.com/rmera/gotraj/dataset"
)

//Action is one analysis capability of an external engine.
type Action interface {
	//Run executes command over the frames of t, adding its results to dsl.
	Run(command string, t traj.Traj, dsl *dataset.DataSetList, args ...string) error

	//PrintOutput prints the engine's own summary of the last run.
	PrintOutput() error
}

//Dispatcher gives a fresh Action for each capability name.
type Dispatcher interface {
	Action(name string) (Action, error)
}

//ActionFunc builds a new Action.
type ActionFunc func() Action

//Registry is a Dispatcher backed by a map of names to ActionFuncs.
//It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	actions map[string]ActionFunc
}

//NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{actions: make(map[string]ActionFunc)}
}

//Register associates name with f, replacing any previous function.
func (R *Registry) Register(name string, f ActionFunc) {
	R.mu.Lock()
	defer R.mu.Unlock()
	if R.actions == nil {
		R.actions = make(map[string]ActionFunc)
	}
	R.actions[name] = f
}

//Action returns a new Action for name, or an UnknownActionError.
func (R *Registry) Action(name string) (Action, error) {
	R.mu.RLock()
	f, ok := R.actions[name]
	R.mu.RUnlock()
	if !ok || f == nil {
		return nil, &UnknownActionError{Name: name, deco: []string{"Action"}}
	}
	return f(), nil
}

//Names returns the registered names, sorted.
func (R *Registry) Names() []string {
	R.mu.RLock()
	defer R.mu.RUnlock()
	ret := make([]string, 0, len(R.actions))
	for k := range R.actions {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}
