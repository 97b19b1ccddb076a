// Package organizer sorts the top-level files of a directory into category
// subfolders chosen by a classify.Classifier.
//
// A pass creates every category folder (plus the fallback) up front, then
// visits each immediate entry once in directory-listing order. Directories,
// non-regular files, and dot-files are left alone. Files whose destination
// already exists are skipped rather than overwritten, and a failed move is
// recorded without stopping the pass. The pass never recurses, so running it
// again over an organized directory moves nothing.
//
// Concurrent passes over the same directory are rejected through a lock file
// kept in the state directory.
package organizer
