// Package attendance reconciles a raw sign-in export against a roster.
//
// A sign-in export starts with meeting metadata. The real table begins at the
// first cell holding the marker text "Name (Original Name)". FindMarker
// returns that position and ExtractColumn slices out the names below it, so
// both steps can be tested without touching files.
//
// Normalizer resolves each extracted name through the roster's alias table.
// Names that do not resolve are kept in normalized form. Classify then splits
// the result:
//
//	present      = resolved ∩ roster
//	absent       = roster − resolved
//	unrecognized = resolved − roster, title-cased, in order, duplicates kept
//
// Names that are blank after normalization are reported as unrecognized
// unless NormalizerOptions.SkipBlankNames is set.
package attendance
