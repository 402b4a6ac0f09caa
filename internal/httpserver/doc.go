// Package httpserver exposes the menu service over HTTP+JSON using Echo.
//
// Every menu response is an envelope:
//
//	{"success": true, "data": [...], "count": n}
//	{"success": false, "message": "...", "refresh": true}
//
// refresh is set when the caller's copy of the menu is stale and it should
// re-read GET /api/menu.
package httpserver
