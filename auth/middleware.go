package auth

// HTTP Basic authentication middleware: the gate in front of every post
// endpoint. The flow is stateless and runs per request: extract credentials
// from the Authorization header, resolve the user, verify the password hash,
// then attach the resolved user to the request context.

import (
	"context"
	"net/http"

	"github.com/user/minblog-go/apperror"
)

// GenericCredentialsMessage is the single client-facing message for every
// credential failure. Unknown usernames and wrong passwords produce the same
// response so the endpoint cannot be used to enumerate accounts.
const GenericCredentialsMessage = "Incorrect username or password"

// CredentialVerifier resolves a username/password pair to an authenticated
// principal. Implementations return an apperror.AuthError carrying
// GenericCredentialsMessage for unknown users and hash mismatches alike, and
// a database/unavailable error for backend failures.
type CredentialVerifier interface {
	VerifyCredentials(ctx context.Context, username, password string) (any, error)
}

// BasicAuth returns middleware enforcing HTTP Basic authentication against
// the given verifier. On success the resolved user is attached to the request
// context; on failure the request is rejected and the handler never runs.
func BasicAuth(verifier CredentialVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok {
				// Absent or malformed header. The body does not say which part
				// of the header was wrong.
				apperror.WriteError(w, r, apperror.NewAuthError(GenericCredentialsMessage, nil))
				return
			}

			user, err := verifier.VerifyCredentials(r.Context(), username, password)
			if err != nil {
				apperror.WriteError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(NewContextWithUser(r.Context(), user)))
		})
	}
}
