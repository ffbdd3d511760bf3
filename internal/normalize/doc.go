// Package normalize reduces raw team and league names to lookup keys.
//
// A key is lowercase ASCII letters and digits only:
//
//	"Gérone"              -> "gerone"
//	"Man. Utd"            -> "manutd"
//	"Borussia M'gladbach" -> "borussiamgladbach"
//
// Keys are never displayed. They are the join key for alias lookups and
// fixture deduplication.
package normalize
