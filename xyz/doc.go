/*
Package xyz reads and writes the plain text structure format understood by
TMscore's legacy coordinate reader (selected with '-infmt 2').

A file has the point count on its first line, a blank second line, and then
one line per point:

	3

	C 1.764052 0.400157 0.978738
	C 2.240893 1.867558 -0.97727
	C 0.950088 -0.15135 -0.10321

Each coordinate occupies a right justified field of exactly 8 characters.
Since the reader is column oriented, coordinates are rounded before being
written so that they fit: first to 6 decimal places, then to 8 significant
figures (7 when negative, so that the sign still fits). Values that do not
fit in the field after rounding are rejected rather than silently mangled.
*/
package xyz
