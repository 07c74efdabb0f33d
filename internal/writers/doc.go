// Package writers turns engine results into reports.
//
// Design:
//   - Writers own all presentation knowledge (the classic text layout, JSON).
//   - Engine stays domain-only; appcore stays orchestration-only.
//   - JSON goes through pkg/api (v1) for a stable wire format.
package writers
