// Package node converts untyped mappings into typed records.
//
// A model pairs a Schema (field name to Descriptor) with a way to build
// records. The Converter walks the schema and the input together:
//   - scalar fields are coerced by the primitive table
//   - enum fields take the output of the first matching pair
//   - nested models recurse
//   - custom fields call their converter
//   - lists, tuples and maps convert each element
//
// Conversion is permissive. Apart from a target without schema
// (SchemaMissingError) and errors returned by custom converters, values
// that do not fit become nil and unknown fields pass through.
package node
