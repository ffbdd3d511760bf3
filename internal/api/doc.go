// Package api provides a small client for the API-Football v3 REST API, used
// to maintain the team and league alias tables.
//
// Endpoints:
//   - GET /teams?league={id}&season={year}: teams of one league season
//   - GET /teams?search={name}: team search, at least 3 characters
//   - GET /leagues?search={name}: league search, at least 3 characters
//
// Authentication is the x-apisports-key header. The API answers most
// application errors with HTTP 200 and a non-empty "errors" field; the client
// turns those into *APIError so callers see a single error type.
package api
