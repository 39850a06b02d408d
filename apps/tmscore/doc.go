/*
Package tmscore runs the TMscore program on pairs of protein structures and
collects its scores: TM-score, GDT-TS, GDT-HA, RMSD and MaxSub, along with the
superposition that TMscore found.

Structures can be given as files (PDB, or the '.xyz' and '.spicker' formats
TMscore understands) or as coordinates in memory, which are written to a
temporary directory in the xyz format for as long as TMscore runs.

Mirror check

A structure and its mirror image can't be superimposed by a rotation, so
TMscore reports a poor score for two structures that differ only by a
reflection. With Config.CheckMirror set, TMscore is run a second time with
'-mirror 1' and the best of each score across both runs is kept: the highest
TM-score, GDT-TS, GDT-HA and MaxSub, and the lowest RMSD. Each metric is
picked independently; the superposition reported is the one from the run with
the best TM-score.

Example:

	conf := tmscore.DefaultConfig
	conf.Binary = "/usr/local/bin/TMscore"
	cmp, err := conf.Compare(ctx, tmscore.File("model.pdb"),
		tmscore.File("native.pdb"))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(cmp.Result)

TMscore treats its second argument as the native structure: it superimposes
the first structure onto the second and normalizes scores by the length of
the second.
*/
package tmscore
