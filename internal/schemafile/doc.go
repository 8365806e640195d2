// Package schemafile reads model definitions from YAML and turns them into
// dynamic models registered with a node.Registry.
//
// # Schema Overview
//
//	version: "1"
//	options:
//	  normalize_keys: true
//	  categories: [safe-number, text-number]
//	models:
//	  Order:
//	    open: false
//	    fields:
//	      id: integer
//	      status: {enum: [[pending, P], [paid, 1]]}
//	      items: {list: Item}
//	      tags: {map: string}
//	      point: {tuple: float}
//	      ref: uuid
//	      note: ~
//
// A field type is one of:
//
//   - a scalar name: string, integer, float, boolean, any (and aliases)
//   - a custom type name: uuid, duration, time
//   - the name of another model, in this file or already registered
//   - a mapping with exactly one of list, tuple, map or enum
//   - null, for a field that is declared but passed through unchanged
//
// Enum entries are [output, input] pairs; the first pair whose input equals
// the value wins.
package schemafile
