// Package preflight provides readiness checks for the paths, credentials and
// remote services autokit depends on.
//
// The CLI "autokit check" command runs RunAll and renders the results as a
// table. Individual checks are exported so tools can reuse them; none of them
// mutate state, and network checks use short timeouts with a single attempt.
package preflight
