// Package phase provides phase-plane analysis for planar dynamical systems.
//
// The package locates and characterizes the structural features of a 2D
// vector field:
//
//   - [FindFixedPoints]: multi-start root search for equilibria over a grid
//   - [Classify]: eigen-classification of an equilibrium (node, saddle,
//     spiral) with its stability
//   - [FindNullclines]: zero sets of each variable's rate of change, as an
//     unordered point cloud or an arclength-ordered continuation curve
//   - [SaddleManifolds]: stable and unstable invariant curves of a saddle
//     grown by predictor-corrector stepping
//   - [FindPeriod]: period estimation from threshold crossings of a sample
//
// # Typical workflow
//
// Find equilibria first, classify them, then use the classified points to
// seed nullclines and manifolds:
//
//	pts, _ := phase.FindFixedPoints(f, phase.FixedPointSearch{})
//	for _, pt := range pts {
//	    fp, err := phase.Classify(f, pt, phase.ClassifyOptions{})
//	    if err == nil && fp.Class == phase.Saddle {
//	        man, _ := phase.SaddleManifolds(f, traj.New(f), fp, opts)
//	        _ = man[phase.StableBranch]
//	    }
//	}
//
// All searches work on a 2D sub-system of a possibly larger field; variables
// outside the analyzed plane are held at fixed values.
package phase
