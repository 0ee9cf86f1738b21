// Package sheet turns downloaded spreadsheet blobs into rectangular string grids.
//
// XLSX workbooks are read with excelize and legacy XLS workbooks with extrame/xls,
// one grid per worksheet. CSV exports are
// sniffed for their delimiter, stripped of a UTF-8 byte order mark and decoded from
// Windows-1251 when they are not valid UTF-8.
package sheet
