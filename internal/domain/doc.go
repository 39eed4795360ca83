// Package domain contains the core entities of the score tracker: subject
// scores, logged practice-test records and the pure statistics derived from
// them (totals, trends, dashboard summaries and chart series). It has no
// knowledge of how records are persisted or presented.
package domain
