/*
 * errors.go, part of gotraj.
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

import "fmt"

//ReservedKeywordError is returned when a mask contains a keyword that
//the search functions add themselves.
type ReservedKeywordError struct {
	Keyword string
	Mask    string
	deco    []string
}

func (err *ReservedKeywordError) Error() string {
	return fmt.Sprintf("mask %q can't contain the keyword %q", err.Mask, err.Keyword)
}

//Decorate adds dec to the decoration slice and returns it.
func (err *ReservedKeywordError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//UnknownActionError is returned by a Dispatcher that doesn't provide
//the requested action.
type UnknownActionError struct {
	Name string
	deco []string
}

func (err *UnknownActionError) Error() string {
	return fmt.Sprintf("no action named %q", err.Name)
}

//Decorate adds dec to the decoration slice and returns it.
func (err *UnknownActionError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//ActionError wraps an error returned by an Action.
type ActionError struct {
	Command string
	Err     error
	deco    []string
}

func (err *ActionError) Error() string {
	return fmt.Sprintf("hbond %q failed: %v", err.Command, err.Err)
}

//Unwrap returns the error given by the action.
func (err *ActionError) Unwrap() error { return err.Err }

//Decorate adds dec to the decoration slice and returns it.
func (err *ActionError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}
