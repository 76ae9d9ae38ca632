/*
 * log.go, part of gotraj.
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

//Package logging builds the named logrus loggers used by the gotraj packages.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu      sync.Mutex
	loggers = make(map[string]*logrus.Logger)
	level   = logrus.InfoLevel
	out     io.Writer = os.Stderr
)

//NamedLogger returns the logger for the package name, creating it if needed.
//Every message is prefixed with the name.
func NamedLogger(name string) *logrus.Logger {
	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[name]; ok {
		return l
	}
	l := &logrus.Logger{
		Out:       out,
		Formatter: &namedFormatter{name: name, TextFormatter: logrus.TextFormatter{DisableTimestamp: true}},
		Hooks:     make(logrus.LevelHooks),
		Level:     level,
	}
	loggers[name] = l
	return l
}

//SetLevel sets the level of every named logger, including those created later.
func SetLevel(l logrus.Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
	for _, v := range loggers {
		v.SetLevel(l)
	}
}

//SetOutput sends the output of every named logger, including those created later, to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	for _, v := range loggers {
		v.SetOutput(w)
	}
}

type namedFormatter struct {
	logrus.TextFormatter
	name string
}

//Format renders a single log entry
func (f *namedFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	entry.Message = fmt.Sprintf("[%s] %s", f.name, entry.Message)
	return f.TextFormatter.Format(entry)
}
