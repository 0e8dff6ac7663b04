// Package codec serializes the note collection to and from its durable
// JSON representation and validates the shape of what it reads back.
//
// Decode is deliberately loud: malformed bytes surface as core.ErrCorrupt
// instead of silently emptying the collection. Missing or empty input is
// not corruption; it decodes to an empty list.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/scribedb/scribe/pkg/core"
)

// EncodeNotes renders the collection as a JSON array in persisted order.
// An empty collection encodes as "[]", never "null".
func EncodeNotes(notes []core.Note) ([]byte, error) {
	if notes == nil {
		notes = []core.Note{}
	}
	return json.Marshal(notes)
}

// DecodeNotes parses a persisted collection. Empty input yields an empty
// list. Malformed bytes, records without an ID, or duplicate IDs yield
// core.ErrCorrupt.
func DecodeNotes(data []byte) ([]core.Note, error) {
	if isEmpty(data) {
		return []core.Note{}, nil
	}

	var notes []core.Note
	if err := strictUnmarshal(data, &notes); err != nil {
		return nil, core.Corrupt(err)
	}
	if notes == nil {
		// Literal "null" payload, written by a buggy producer. Treat like
		// a missing key rather than corruption.
		return []core.Note{}, nil
	}

	seen := make(map[int64]bool, len(notes))
	for i, n := range notes {
		if n.ID == 0 {
			return nil, core.Corrupt(fmt.Errorf("record %d has no id", i))
		}
		if seen[n.ID] {
			return nil, core.Corrupt(fmt.Errorf("duplicate id %d", n.ID))
		}
		seen[n.ID] = true
	}

	return notes, nil
}

// EncodeCategories renders the known-category set, preserving order.
func EncodeCategories(categories []string) ([]byte, error) {
	if categories == nil {
		categories = []string{}
	}
	return json.Marshal(categories)
}

// DecodeCategories parses the known-category set. Empty input yields an
// empty set; malformed bytes yield core.ErrCorrupt.
func DecodeCategories(data []byte) ([]string, error) {
	if isEmpty(data) {
		return []string{}, nil
	}

	var categories []string
	if err := strictUnmarshal(data, &categories); err != nil {
		return nil, core.Corrupt(err)
	}
	if categories == nil {
		return []string{}, nil
	}
	return categories, nil
}

func isEmpty(data []byte) bool {
	return len(bytes.TrimSpace(data)) == 0
}

// strictUnmarshal rejects trailing garbage so that a truncated or
// concatenated payload is reported instead of half-read.
func strictUnmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("trailing data after collection")
	}
	return nil
}
