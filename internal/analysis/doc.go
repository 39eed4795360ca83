// Package analysis turns recent test records into an AI-written performance
// report with an admission-probability estimate.
//
// The Analyzer never fails: every outcome, including an offline or broken
// generator, maps to an Insight with fixed fallback text and probability 0.
package analysis
