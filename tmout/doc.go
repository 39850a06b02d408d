/*
Package tmout reads the report that TMscore writes to stdout.

Only a handful of lines in the report are interesting. Scores are read by
ParseScores and the superposition (the rotation matrix and translation vector
that move the first structure onto the second) is read by ParseTransform.
Both work on the full text of the report and ignore everything they don't
recognize. A report that is missing a score or the rotation matrix block is
an error; partial results are never returned.
*/
package tmout
