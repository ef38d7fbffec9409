// Package catalog stores the crawler info of pages in a SQLite database.
//
// The catalog maps a page path such as "/about" to its model.WebCrawlerInfo.
// Infos are stored in their JSON form together with their hash, so that
// re-importing an unchanged page does not touch the row.
//
// The database is a single file, robotsmeta.db, opened through the CGO-free
// modernc.org/sqlite driver.
package catalog
