// Package match normalizes identifiers so that input keys written in a
// different case style still reach their field.
//
// NormalizeIdent folds "first_name", "firstName" and "FirstName" to "firstname".
package match
