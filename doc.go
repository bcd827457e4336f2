// Package stagereport generates the figures and summary workbook for the
// cycling stage-points report.
//
// The pipeline is a single linear run: load the whitespace-delimited stage
// results table, derive grouped summaries and a diagnostic interaction
// regression, and render each view as a PNG artifact under a fixed output
// directory. The document-typesetting step that embeds the figures is a
// separate external tool and consumes the artifacts by relative path.
//
// # Usage
//
// Run the pipeline with no arguments from the directory holding cycling.txt:
//
//	stagereport
//
// Paths can be overridden:
//
//	stagereport --data results/cycling.txt --out build/figures
//
// # Packages
//
//   - dataset: loads the source table into an ordered in-memory dataset
//   - analysis: derives the grouped summaries and the interaction model
//   - figures: renders each derived view as a PNG artifact
//   - report: writes the tabular summary workbook
//   - pkg/errors, pkg/log: structured errors, warnings, and logging
package stagereport
