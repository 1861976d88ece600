// Package mlexp provides class-imbalance-aware metrics for binary classification
// experiments.
//
// # Quick Start
//
//	acc, err := mlexp.WeightedAccuracy(yTrue, yPred)
//	if errors.Is(err, mlexp.ErrUndefinedMetric) {
//	    // one class is missing from yTrue; acc is NaN
//	}
//
// # Weighted Metrics
//
// The weighted family first normalizes each cell of the 2x2 contingency table by the
// size of its true class:
//
//	TP = tp/(tp+fn)   FN = fn/(tp+fn)
//	FP = fp/(tn+fp)   TN = tn/(tn+fp)
//
// and then derives accuracy, sensitivity, specificity, PPV and NPV from those rates.
// Each class therefore contributes equally regardless of its sample count. Accuracy
// reduces to (TP+TN)/2, sensitivity to TP and specificity to TN whenever the rates are
// defined; the full divisions are still performed so that NaN propagates.
//
// # Undefined Values
//
// A zero denominator is never coerced to 0 or 1. Rates and metrics carry NaN and the
// label-level functions additionally return an error wrapping ErrUndefinedMetric.
//
// # Thread Safety
//
// Every function is pure and safe for concurrent use.
//
// Related packages: dataset (CSV tables and class relabeling), scoring (scorer
// registry, sweeps, cross-validation), gridsearch, summary, plotting, report and
// inference (ONNX-backed classifiers).
package mlexp
