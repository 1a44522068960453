// Package formats provides parsers for the Ragnarok Online map files the
// exporter reads: RSW (world objects and lighting), GAT (walkability grid)
// and the texture table of GND (ground mesh).
package formats
