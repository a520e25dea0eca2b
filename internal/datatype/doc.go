// Package datatype holds the host's name tables for built-in data types and
// access levels. Lookups are by exact name; the builder decides what to do
// with names that are not found.
package datatype
