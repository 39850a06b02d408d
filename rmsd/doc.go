/*
Package rmsd implements a version of the Kabsch algorithm that is described
in detail here: http://cnx.org/content/m11608/latest/

It is an independent check on TMscore: RMSD finds the optimal superposition
of two equal length structures, while Superposed measures how well a given
superposition (such as the one TMscore reports) fits.

A convenience function for computing the RMSD of residue ranges from two PDB
entries is also provided.
*/
package rmsd
