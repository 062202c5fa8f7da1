// SPDX-FileCopyrightText: 2022 SoftIron Limited <info@softiron.com>
// SPDX-License-Identifier: GNU General Public License v2.0 only WITH Classpath exception 2.0

// Package generator creates and verifies the payloads that the example
// workloads in internal/workload write to and read back from a
// storage.Connection. Payloads are generated algorithmically from a
// seed carried in their own header, so verifying a read never requires
// holding the expected bytes in memory.
package generator

import "fmt"

// Generator creates object payloads and verifies that payloads read
// back from storage are well-formed.
type Generator interface {
	// Generate fills buffer (which must be at least size bytes) with a
	// payload for key. cycle should be incremented on every overwrite
	// of the same key so the new contents differ from the old.
	Generate(size uint64, key string, cycle uint64, buffer *[]byte)

	// Verify reports whether buffer holds a well-formed payload for
	// key. scratch is a caller-supplied buffer at least as large as
	// buffer, used to regenerate the expected contents without an
	// extra allocation per call.
	Verify(size uint64, key string, buffer *[]byte, scratch *[]byte) error
}

// Config carries generator-specific construction parameters, keyed by
// name so that new generator kinds can add fields without disturbing
// the factory signature.
type Config map[string]string

// New mints a Generator of the given kind.
func New(kind string, seed uint64, config Config) (Generator, error) {
	switch kind {
	case "prng":
		return NewPRNGGenerator(seed), nil
	}

	return nil, fmt.Errorf("generator: unknown kind %q", kind)
}
