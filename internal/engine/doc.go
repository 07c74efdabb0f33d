// Package engine contains the prime computation core: the trial-division
// baseline, the sequential sieve and the parallel sieve that splits one shared
// Arena across fork-join workers. It never imports app, cli, config or output;
// keep it domain-only.
//
// External outputs must not depend on the shapes here; use pkg/api for the
// stable JSON wire types.
package engine
