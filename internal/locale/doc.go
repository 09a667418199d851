// Package locale reads and writes translation documents on disk.
//
// A directory holds one document per locale; the file name is the locale
// identifier and files are matched across directories by exact name. Only
// .json, .yaml and .yml files are considered documents.
//
// All writes go through WriteFileAtomic, so an output file is either the
// complete new content or untouched.
package locale
