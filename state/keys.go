// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

const (
	Read  Permissions = 1
	Write             = 1<<1 | Read

	None Permissions = 0
	All              = Read | Write
)

// Keys maps every state key an instruction may touch to what it may do
// with it. Accounts listed as writable get [Write], all others [Read].
type Keys map[string]Permissions

type Permissions byte

// Add unions [permission] into the permissions already held by [name], so a
// key listed twice never loses access.
func (k Keys) Add(name string, permission Permissions) {
	k[name] |= permission
}

// Has returns true if [p] has all the permissions that are contained in require
func (p Permissions) Has(require Permissions) bool {
	return require&^p == 0
}
