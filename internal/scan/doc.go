// Package scan classifies raw compiler stderr into typed lines: severity
// headers, location pointers, context, and trailer summaries. It is the first
// stage of the diagnostic pipeline and is total over arbitrary text.
package scan
