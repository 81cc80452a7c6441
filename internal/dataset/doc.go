// Package dataset loads the trade records and country boundaries the
// dashboard is built from.
//
// Both files are read once at startup by Load. The resulting *Dataset is
// immutable and is shared by every request without locking; accessors hand
// out copies so callers cannot modify the loaded data.
//
// Supported inputs:
//
//   - trade data: CSV or XLSX (first sheet) with the header
//     Country, Trade_Partner, Trade_Type, Trade_Volume, Latitude, Longitude
//     in any order; extra columns are ignored.
//   - boundaries: a GeoJSON FeatureCollection whose features carry a string
//     "name" property and a Polygon or MultiPolygon geometry.
package dataset
