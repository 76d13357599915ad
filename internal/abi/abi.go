package abi

import (
	"encoding/json"
	"fmt"
)

// EntryType is the "type" tag on an ABI entry.
type EntryType string

const (
	EntryTypeFunction    EntryType = "function"
	EntryTypeConstructor EntryType = "constructor"
	EntryTypeL1Handler   EntryType = "l1_handler"
	EntryTypeEvent       EntryType = "event"
	EntryTypeStruct      EntryType = "struct"
)

// Variable is one named slot of an ABI entry, and at the same time an
// argument or return value in the contract source.
type Variable struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// EntryCommon holds the fields every ABI entry shares.
type EntryCommon struct {
	Type EntryType `json:"type"`
	Name string    `json:"name"`
}

func (e EntryCommon) Common() EntryCommon { return e }

// Entry is a single item of the ABI document.
type Entry interface {
	Common() EntryCommon
}

// FunctionEntry covers entries of type function, constructor and
// l1_handler. StateMutability is "view" for view functions and empty
// otherwise.
type FunctionEntry struct {
	EntryCommon
	Inputs          []Variable `json:"inputs"`
	Outputs         []Variable `json:"outputs"`
	StateMutability string     `json:"stateMutability,omitempty"`
}

// EventEntry describes an emitted event: Keys carries the indexed
// fields, Data the plain ones.
type EventEntry struct {
	EntryCommon
	Keys []string   `json:"keys"`
	Data []Variable `json:"data"`
}

// StructMember is a struct field plus its felt offset from the start
// of the struct.
type StructMember struct {
	Variable
	Offset int `json:"offset"`
}

// StructEntry describes a struct layout referenced by an entry-point
// signature. Size is the total width in felts.
type StructEntry struct {
	EntryCommon
	Size    int            `json:"size"`
	Members []StructMember `json:"members"`
}

// Contract is a whole contract ABI in emission order.
type Contract []Entry

func (c Contract) MarshalJSON() ([]byte, error) {
	raw := make([]json.RawMessage, 0, len(c))
	for _, entry := range c {
		data, err := json.Marshal(entry)
		if err != nil {
			return nil, err
		}
		raw = append(raw, data)
	}
	return json.Marshal(raw)
}

func (c *Contract) UnmarshalJSON(data []byte) error {
	// Unmarshal the common part of every entry first to learn the
	// type tags, then decode each raw entry into the matching
	// concrete type at the same index.
	var commons []EntryCommon
	if err := json.Unmarshal(data, &commons); err != nil {
		return err
	}

	items := make([]json.RawMessage, 0, len(commons))
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}

	contract := make(Contract, 0, len(items))
	for i, item := range items {
		switch commons[i].Type {
		case EntryTypeFunction, EntryTypeConstructor, EntryTypeL1Handler:
			entry := new(FunctionEntry)
			if err := json.Unmarshal(item, entry); err != nil {
				return err
			}
			contract = append(contract, entry)

		case EntryTypeEvent:
			entry := new(EventEntry)
			if err := json.Unmarshal(item, entry); err != nil {
				return err
			}
			contract = append(contract, entry)

		case EntryTypeStruct:
			entry := new(StructEntry)
			if err := json.Unmarshal(item, entry); err != nil {
				return err
			}
			contract = append(contract, entry)

		default:
			return fmt.Errorf("unexpected ABI entry type %q", commons[i].Type)
		}
	}

	*c = contract
	return nil
}

// Functions returns the entries of type function, constructor and
// l1_handler in emission order.
func (c Contract) Functions() []*FunctionEntry {
	var functions []*FunctionEntry
	for _, entry := range c {
		if fn, ok := entry.(*FunctionEntry); ok {
			functions = append(functions, fn)
		}
	}
	return functions
}

// GetFunction returns the function entry with the given name, or nil.
func (c Contract) GetFunction(name string) *FunctionEntry {
	for _, entry := range c {
		if fn, ok := entry.(*FunctionEntry); ok && fn.Name == name {
			return fn
		}
	}
	return nil
}
