// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package account

import "errors"

var ErrNotEnoughAccounts = errors.New("not enough account keys")

// Iterator hands out the accounts of an instruction in order.
type Iterator struct {
	accounts []*Info
	next     int
}

func NewIterator(accounts []*Info) *Iterator {
	return &Iterator{accounts: accounts}
}

// Next returns the next account or ErrNotEnoughAccounts once the list is
// exhausted.
func (it *Iterator) Next() (*Info, error) {
	if it.next >= len(it.accounts) {
		return nil, ErrNotEnoughAccounts
	}
	a := it.accounts[it.next]
	it.next++
	return a, nil
}
