// Package entitlement mounts the entitlement service over HTTP.
//
// Routes:
//
//	GET  /users/{userID}/entitlements/{resource}  decision, 200 even when denied
//	POST /users/{userID}/usage/{resource}         {"tracked": bool}, always 202
//	GET  /users/{userID}/usage                    usage summary
//	PUT  /admin/users/{userID}/bypass             {"enabled", "reason"}, 204
//	PUT  /admin/users/{userID}/tier               {"tier", "status"}, 204
//
// Admin routes require a bearer token. Malformed user IDs and unknown
// resources are rejected with 400 before reaching the evaluator.
// Accept-Language picks the language of decision reasons.
package entitlement
