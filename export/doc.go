// Package export delivers rendered log text to the user as a file.
//
// A Downloader receives a suggested filename and the content. DirDownloader
// saves into a directory, WriterDownloader streams to an io.Writer and
// Memory keeps exports in memory for tests.
package export
