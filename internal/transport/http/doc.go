// Package http implements the HTTP handlers of the trade dashboard.
// Handlers stay thin: they parse widget state from the query string or a JSON
// body, call the service layer and format the result.
//
// # Request Flow
//
//	HTTP Request → Chi Router → Middleware → Handler → DashboardService → dashboard.Build
//
// # Selection Parameters
//
// Every dashboard endpoint reads the same widget state:
//
//	country   absent: first country in the data
//	types     absent: all trade types; present but empty: no trade types
//	          may repeat (types=A&types=B) or be comma-separated (types=A,B)
//
// # Responses
//
// JSON endpoints answer {"status":"success","data":...}. Exports stream the
// file with a Content-Disposition attachment header. Every error is an RFC 7807
// problem document produced by errors.ErrorHandler:
//
//	{
//	    "type": "/errors/validation",
//	    "title": "Bad Request",
//	    "status": 400,
//	    "detail": "Invalid value for parameter \"simplify\"",
//	    "instance": "/api/dashboard/choropleth",
//	    "trace_id": "..."
//	}
package http
