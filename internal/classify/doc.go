// Package classify maps file extensions to destination category names.
//
// An ExtensionMap is an ordered, immutable table of categories built once at
// startup from configuration. Classifier lookups scan categories in declared
// order and return the first match, falling back to "Others". When the same
// extension appears under more than one category the earlier category wins;
// Overlaps reports those conflicts so configuration validation can warn.
package classify
