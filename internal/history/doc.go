// Package history keeps the saved translations of the user.
//
// The Store holds entries newest first and writes the whole sequence to a
// storage.KV on every change. Entries can be exported as a spreadsheet
// friendly CSV file and read back with ParseCSV.
package history
