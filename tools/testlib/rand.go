// Copyright (c) 2016 - 2020 Sqreen. All Rights Reserved.
// Please refer to our terms for more information:
// https://www.sqreen.io/terms.html

package testlib

import (
	"math/rand"
	"strings"
)

const identifierRunes = "abcdefghijklmnopqrstuvwxyz"

// RandString returns a random lowercase string of `size[0]` runes, or of a
// length within [size[0], size[1]) when two sizes are given.
func RandString(size ...int) string {
	var n int
	if len(size) == 1 {
		n = size[0]
	} else {
		from := size[0]
		to := size[1]
		n = from + rand.Intn(to-from)
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = identifierRunes[rand.Intn(len(identifierRunes))]
	}
	return string(b)
}

// RandTableNames returns `n` distinct random SQL table identifiers.
func RandTableNames(n int) []string {
	seen := make(map[string]struct{}, n)
	names := make([]string, 0, n)
	for len(names) < n {
		name := "t_" + RandString(4, 12)
		if _, exists := seen[name]; exists {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// RandCSV joins the given tokens with commas and random surrounding spaces.
func RandCSV(tokens []string) string {
	padded := make([]string, len(tokens))
	for i, token := range tokens {
		padded[i] = strings.Repeat(" ", rand.Intn(3)) + token + strings.Repeat(" ", rand.Intn(3))
	}
	return strings.Join(padded, ",")
}
