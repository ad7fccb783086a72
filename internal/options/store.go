// Copyright (c) 2016 - 2020 Sqreen. All Rights Reserved.
// Please refer to our terms for more information:
// https://www.sqreen.io/terms.html

// Package options implements the typed key/value store holding option values.
//
// Every option name maps to a single typed value: a boolean, a 64-bit integer,
// a string, a compiled pattern or a set of string tokens. Values are kept in an
// immutable radix tree published atomically: writers serialize among
// themselves and publish a new tree per entry write, while readers never lock
// and always observe a complete tree. A single entry write is therefore atomic
// and visible to any read starting after it, but nothing groups several entry
// writes together.
package options

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	iradix "github.com/hashicorp/go-immutable-radix"
	"github.com/sqreen/go-sqllog/internal/sqlib/sqerrors"
)

// Kind is the type of value an option holds.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindInt64
	KindPattern
	KindSet
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt64:
		return "int64"
	case KindPattern:
		return "pattern"
	case KindSet:
		return "set"
	default:
		return "string"
	}
}

// ConversionError is returned when a raw option string cannot be converted
// into the kind of value the option holds.
type ConversionError struct {
	Name  string
	Value string
	Kind  Kind
	Err   error
}

func (e *ConversionError) Error() string {
	return "could not convert `" + e.Name + "` value " + strconv.Quote(e.Value) + " to " + e.Kind.String() + ": " + e.Err.Error()
}

func (e *ConversionError) Unwrap() error { return e.Err }

type Store struct {
	// Serializes writers. Readers only load the current tree.
	mu   sync.Mutex
	tree atomic.Value // *iradix.Tree
}

func NewStore() *Store {
	s := &Store{}
	s.tree.Store(iradix.New())
	return s
}

func (s *Store) snapshot() *iradix.Tree {
	return s.tree.Load().(*iradix.Tree)
}

func (s *Store) get(name string) (interface{}, bool) {
	return s.snapshot().Get([]byte(name))
}

// update publishes the tree resulting from `f`. A nil value deletes the entry.
func (s *Store) update(name string, f func(old interface{}) interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tree := s.snapshot()
	old, _ := tree.Get([]byte(name))
	v := f(old)
	if v == nil {
		tree, _, _ = tree.Delete([]byte(name))
	} else {
		tree, _, _ = tree.Insert([]byte(name), v)
	}
	s.tree.Store(tree)
}

func (s *Store) put(name string, v interface{}) {
	s.update(name, func(interface{}) interface{} { return v })
}

// Delete removes the entry of option `name`.
func (s *Store) Delete(name string) {
	s.put(name, nil)
}

// Has returns true when option `name` currently holds a value.
func (s *Store) Has(name string) bool {
	_, ok := s.get(name)
	return ok
}

// SetString stores `v`. The empty string deletes the entry.
func (s *Store) SetString(name, v string) {
	if v == "" {
		s.Delete(name)
		return
	}
	s.put(name, v)
}

func (s *Store) String(name string) (v string, ok bool) {
	raw, _ := s.get(name)
	v, ok = raw.(string)
	return
}

func (s *Store) SetBool(name string, v bool) {
	s.put(name, v)
}

// ParseBool converts and stores the raw boolean string `raw`. The empty string
// deletes the entry. The stored value is left unchanged on a conversion error.
func (s *Store) ParseBool(name, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		s.Delete(name)
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return conversionError(name, raw, KindBool, err)
	}
	s.SetBool(name, v)
	return nil
}

func (s *Store) Bool(name string) (v bool, ok bool) {
	raw, _ := s.get(name)
	v, ok = raw.(bool)
	return
}

func (s *Store) SetInt64(name string, v int64) {
	s.put(name, v)
}

// ParseInt64 converts and stores the raw base-10 integer string `raw`. The
// empty string deletes the entry. The stored value is left unchanged on a
// conversion error.
func (s *Store) ParseInt64(name, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		s.Delete(name)
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return conversionError(name, raw, KindInt64, err)
	}
	s.SetInt64(name, v)
	return nil
}

func (s *Store) Int64(name string) (v int64, ok bool) {
	raw, _ := s.get(name)
	v, ok = raw.(int64)
	return
}

// SetPattern stores `re`. A nil pattern deletes the entry.
func (s *Store) SetPattern(name string, re *regexp.Regexp) {
	if re == nil {
		s.Delete(name)
		return
	}
	s.put(name, re)
}

func (s *Store) Pattern(name string) *regexp.Regexp {
	raw, _ := s.get(name)
	re, _ := raw.(*regexp.Regexp)
	return re
}

// SetSet stores the set parsed from the comma-separated list `csv`. An empty
// set is stored as such rather than deleted.
func (s *Store) SetSet(name, csv string) {
	s.StoreSet(name, ParseSet(csv))
}

func (s *Store) StoreSet(name string, set Set) {
	s.put(name, set)
}

// Set returns the set stored under `name`, or the empty set.
func (s *Store) Set(name string) Set {
	raw, _ := s.get(name)
	set, _ := raw.(Set)
	return set
}

// AddToSet inserts tokens into the set stored under `name`. Only the set entry
// is rewritten: values previously derived from it are left as they are.
func (s *Store) AddToSet(name string, tokens ...string) {
	s.update(name, func(old interface{}) interface{} {
		set, _ := old.(Set)
		return set.with(tokens)
	})
}

// RemoveFromSet deletes tokens from the set stored under `name`. Only the set
// entry is rewritten: values previously derived from it are left as they are.
func (s *Store) RemoveFromSet(name string, tokens ...string) {
	s.update(name, func(old interface{}) interface{} {
		set, _ := old.(Set)
		return set.without(tokens)
	})
}

func conversionError(name, raw string, kind Kind, err error) error {
	return sqerrors.WithKey(sqerrors.WithTimestamp(&ConversionError{
		Name:  name,
		Value: raw,
		Kind:  kind,
		Err:   err,
	}), name)
}
