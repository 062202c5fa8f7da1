// SPDX-FileCopyrightText: 2022 SoftIron Limited <info@softiron.com>
// SPDX-License-Identifier: GNU General Public License v2.0 only WITH Classpath exception 2.0

// Package config holds the process-wide settings parsed from the
// siowork command line.
package config

// Config holds the parameters a running siowork process needs.
//
// It is not thread-safe: by convention it is set once, in main, before
// any worker or listener goroutine starts, and only read afterwards.
type Config struct {
	ListenAddress string
	MountsDir     string
}

var global Config

// Set installs c as the process-wide configuration.
func Set(c Config) {
	global = c
}

// Get returns the current process-wide configuration.
func Get() Config {
	return global
}
