// Package query holds the deterministic free-text parser used when no
// query interpreter is configured or the configured one fails.
//
// Numeric phrases (income, height, age) are extracted with regular
// expressions; everything else is looked up in refdata tables.
package query
