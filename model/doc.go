// Package model provides the shared data types of the allocation pipeline.
//
// This package defines the user-facing data structures that flow between the
// readers, the allocators and the exporters. All ingestion and allocation
// operations ultimately produce these types, making them the primary API for
// consuming results.
//
// # Roster
//
// The [Roster] type is an ingested record set together with its provenance:
//
//	roster := model.NewRoster()
//	roster.Add(model.Record{Roll: "21CS001", Name: "Asha Verma"})
//
// Each [Record] is one student row. The Branch field is derived from the
// roll number during tagging and is empty straight after ingestion.
//
// # Allocation
//
// The allocators produce an [Allocation]: an ordered list of [Group] values
// plus [AllocationStats] describing the distribution. Groups are numbered
// from one and may be empty when records run out before groups do.
//
// # Summary
//
// The [Summary] type is the group-by-branch count matrix of one allocation,
// with per-row and per-column totals and export methods ToCSV() and
// ToMarkdown().
package model
