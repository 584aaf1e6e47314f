/*
Package observability provides tools for monitoring themer builds.

It turns the build hooks into Prometheus metrics and can export them as a
node_exporter textfile, so batch builds can be scraped without a server.
*/
package observability
