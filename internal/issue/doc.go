// SPDX-License-Identifier: MPL-2.0

// Package issue carries the user-facing error surface: structured errors
// with remediation hints, and a catalog of known mod-loading failure
// conditions with Markdown-rendered help text.
package issue
