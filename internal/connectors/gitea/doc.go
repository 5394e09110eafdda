// Package gitea fetches commit pages from the Gitea and Forgejo REST API.
//
// The commit list endpoint is
//
//	GET /api/v1/repos/{owner}/{repo}/commits?sha={branch}&since={date}&limit={n}&page={i}
//
// and pages are linked through the same Link header convention as GitHub.
package gitea
