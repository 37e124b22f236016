package egraph

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"
)

// Domain prefix for content-addressed graph fingerprints.
// Version suffix enables future format migration.
const fingerprintDomain = "egraph/dump/v1"

// Dump renders the partition in a canonical textual form: the root first,
// then every live class in id order with its member node keys sorted.
// Node keys are canonicalized through the union-find, so a dump taken
// between Merge and Rebuild still reads consistently.
//
// The output is the golden-snapshot format of the conformance harness and
// the CLI's eval output; byte-for-byte stability is part of its contract.
func (g *EGraph) Dump() []byte {
	var b bytes.Buffer
	if g.root != NoClass {
		fmt.Fprintf(&b, "root: c%d\n", g.uf.Find(g.root))
	}

	ids := make([]ClassID, 0, len(g.classes))
	for id := range g.classes {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		nodes := g.classes[id].nodes.slice()
		keys := make([]string, 0, len(nodes))
		for _, n := range nodes {
			k := g.Canonicalize(n).Key()
			if !slices.Contains(keys, k) {
				keys = append(keys, k)
			}
		}
		slices.Sort(keys)
		fmt.Fprintf(&b, "c%d: %s\n", id, strings.Join(keys, " | "))
	}
	return b.Bytes()
}

// Fingerprint computes the domain-separated SHA-256 hash of the canonical
// dump. Format: SHA256(domain + 0x00 + dump). The null byte separator
// prevents domain/data boundary ambiguity. Two graphs with the same dump
// fingerprint identically. The dump names classes by their representative
// ids, so the same partition reached with different representatives (for
// example by merging in another order) fingerprints differently.
func (g *EGraph) Fingerprint() string {
	h := sha256.New()
	h.Write([]byte(fingerprintDomain))
	h.Write([]byte{0x00})
	h.Write(g.Dump())
	return hex.EncodeToString(h.Sum(nil))
}
