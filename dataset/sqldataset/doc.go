/*
Package sqldataset reads training and query frames from SQL databases through
database/sql, where every row of a table or query result is a row of the frame.

The command registers the SQLite3 and PostgreSQL drivers; any other driver
works as well.
*/
package sqldataset
