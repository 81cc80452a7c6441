// Package exporter writes dashboard views to downloadable formats.
//
// Supported formats:
//
//	csv      the filtered records (UTF-8 BOM for Excel)
//	xlsx     a workbook with Records, Partners and Countries sheets
//	png      a bar chart of trade volume by partner
//	geojson  the joined choropleth as a FeatureCollection
//
// Example usage:
//
//	exp := exporter.New(exporter.Options{BOMPrefix: true})
//	if err := exp.Export(w, exporter.FormatXLSX, view); err != nil {
//		return err
//	}
package exporter
