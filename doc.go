// Package hhprep turns raw HH.ru resume exports into numeric feature
// matrices suitable for statistical modeling.
//
// The core of the module is a sequential transformation pipeline: a chain
// of stages that share a mutable working table of resume records and
// rewrite, enrich, filter and encode it until nothing but numbers remain.
//
// # Packages
//
//   - frame: the in-memory record set (rows of dynamically typed cells)
//   - pipeline: the stage contract, the shared context and the chain runner
//   - pipeline/stages: the concrete transformation stages, from CSV loading
//     through text-heuristic feature extraction to the final encoding and
//     the matrix/target split
//   - preprocessing: column encoders (top-N collapse, one-hot, multi-hot,
//     ordinal) and a feature StandardScaler
//   - linear: ridge regression for the downstream salary model
//   - metrics: regression metrics (MAE, RMSE, R², NMAE, MAPE)
//   - persist: .npy and CSV writers plus an optional Postgres sink
//   - report: distribution and prediction plots
//
// # Quick start
//
//	chain := pipeline.NewChain(logger,
//	    stages.NewCSVLoader("hh.csv"),
//	    stages.NewCleaningStage(),
//	    stages.NewBasicFeatureStage(),
//	    stages.NewCategoryFeatureStage(),
//	    stages.NewComplexFeatureStage(),
//	    stages.NewNormalizationStage(),
//	    stages.NewEncodingStage(),
//	    stages.NewSplitStage("salary"),
//	)
//	ctx, err := chain.Run(pipeline.NewContext())
//
// After a successful run ctx.X holds the feature matrix and ctx.Y the
// target vector, both backed by gonum.
package hhprep
