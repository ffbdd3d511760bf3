// Package source implements the schedule sources read by each fetch cycle.
//
// Sources:
//   - file: a JSON file written by a scraper (missing file = no records)
//   - http: a JSON document fetched with GET
//   - ws: a WebSocket feed; the first message carrying records is the snapshot
//
// Every source accepts either a bare JSON array of records or an object
// wrapping the array under "records", "matches" or "data". Records without a
// "source" field are stamped with the source ID.
package source
