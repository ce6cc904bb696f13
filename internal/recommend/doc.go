// NeighborCF - User-Based Collaborative Filtering
// Copyright 2026 Recolib
// SPDX-License-Identifier: Apache-2.0
// https://github.com/recolib/neighborcf

/*
Package recommend implements a user-based collaborative-filtering pipeline
over in-memory (user, item, rating) records.

The pipeline has three sequential stages:

 1. Matrix build: records become a dense user-by-item matrix; cells with
    no observed rating take a configurable fill value (0 by default).
 2. Similarity: pairwise Pearson correlation over the full, fill-padded
    item-universe vectors yields a symmetric user-by-user matrix. Zero
    variance makes a pair's similarity NaN rather than an error.
 3. Recommendation: the top-k most similar users' ratings are grouped by
    item and ranked by arithmetic mean.

# Lifecycle

Both matrices are cached on the Engine and only recomputed when their
stage is explicitly invoked again. Reading a matrix before its stage has
run fails with ErrMatrixNotBuilt or ErrSimilarityNotComputed; nothing is
computed lazily on demand. Build discards any cached similarity matrix so
staleness is impossible.

# Thread Safety

The engine is safe for concurrent use. Build and ComputeSimilarity take an
exclusive lock; SimilarUsers, Neighbors, Recommend, and the matrix
accessors take a shared lock.

# Semantics Worth Knowing

Treating missing ratings as the fill value means correlation runs over
vectors padded with it, which inflates similarity between users who share
many unrated items. MissingValuePolicy makes the choice explicit but the
default preserves it. Recommendations do not exclude items the target user
has already rated unless Config.ExcludeRated is set.
*/
package recommend
