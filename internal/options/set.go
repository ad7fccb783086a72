// Copyright (c) 2016 - 2020 Sqreen. All Rights Reserved.
// Please refer to our terms for more information:
// https://www.sqreen.io/terms.html

package options

import (
	"strings"

	iradix "github.com/hashicorp/go-immutable-radix"
)

// Set is an immutable set of string tokens. The zero value is the empty set.
// Iteration follows the lexical order of the tokens.
type Set struct {
	tree *iradix.Tree
}

// ParseSet splits a comma-separated list into its trimmed and deduplicated
// tokens. Empty tokens are dropped so that "a,,b" and "a, b," are both {a, b}.
func ParseSet(csv string) Set {
	return NewSet(strings.Split(csv, ",")...)
}

// NewSet returns the set of the given non-empty trimmed tokens.
func NewSet(tokens ...string) Set {
	txn := iradix.New().Txn()
	for _, token := range tokens {
		if token = strings.TrimSpace(token); token != "" {
			txn.Insert([]byte(token), struct{}{})
		}
	}
	return Set{tree: txn.Commit()}
}

// Len returns the number of tokens in the set.
func (s Set) Len() int {
	if s.tree == nil {
		return 0
	}
	return s.tree.Len()
}

func (s Set) IsEmpty() bool { return s.Len() == 0 }

// Contains returns true when `token` is in the set.
func (s Set) Contains(token string) bool {
	if s.tree == nil {
		return false
	}
	_, exists := s.tree.Get([]byte(token))
	return exists
}

// Values returns the tokens of the set.
func (s Set) Values() []string {
	if s.tree == nil {
		return nil
	}
	values := make([]string, 0, s.tree.Len())
	s.tree.Root().Walk(func(k []byte, _ interface{}) bool {
		values = append(values, string(k))
		return false
	})
	return values
}

// String returns the comma-separated list of the tokens, which ParseSet
// parses back into an equal set.
func (s Set) String() string {
	return strings.Join(s.Values(), ",")
}

// Equal returns true when both sets hold the same tokens.
func (s Set) Equal(o Set) bool {
	if s.Len() != o.Len() {
		return false
	}
	for _, v := range s.Values() {
		if !o.Contains(v) {
			return false
		}
	}
	return true
}

func (s Set) with(tokens []string) Set {
	txn := s.txn()
	for _, token := range tokens {
		if token = strings.TrimSpace(token); token != "" {
			txn.Insert([]byte(token), struct{}{})
		}
	}
	return Set{tree: txn.Commit()}
}

func (s Set) without(tokens []string) Set {
	txn := s.txn()
	for _, token := range tokens {
		txn.Delete([]byte(strings.TrimSpace(token)))
	}
	return Set{tree: txn.Commit()}
}

func (s Set) txn() *iradix.Txn {
	if s.tree == nil {
		return iradix.New().Txn()
	}
	return s.tree.Txn()
}
