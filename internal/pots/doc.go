// Package pots computes side-pot layers from cumulative betting
// contributions and settles them at showdown. Hand strength arrives as an
// opaque ordered value; cards never enter this package.
package pots
