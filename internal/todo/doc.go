// Package todo stores, persists, and orders personal tasks.
//
// The task file (tasks.json by default) looks like:
//
//	{
//	  "schema_version": 1,
//	  "tasks": [
//	    {
//	      "id": 1,
//	      "name": "Buy milk",
//	      "status": "Not Done",
//	      "priority": "High"
//	    }
//	  ]
//	}
//
// # Loading
//
// A missing file is an empty collection. A record without "status" gets
// DefaultStatus. A record without "id", "name", or "priority" fails the load
// with a *ValidationError; so does anything that is not valid JSON.
//
// # Priority Rank
//
//   - "High": 3
//   - "Medium": 2
//   - "Low": 1
//   - anything else: 0
//
// # Identifiers
//
// Ids start at 1. A Store hands out max(id)+1 and keeps counting up for its
// lifetime, so deleting a task never frees its id for the next Add. A file
// holding an id below 1 or the same id twice fails to load.
//
// # File Format
//
// When writing task files, the package uses:
//   - 2-space indentation
//   - Trailing newline
//   - A temp file renamed over the target
package todo
