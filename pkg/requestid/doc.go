// Package requestid assigns every HTTP request an ID, stores it in the
// request context and echoes it in the X-Request-ID response header so log
// lines can be correlated with client reports.
package requestid
