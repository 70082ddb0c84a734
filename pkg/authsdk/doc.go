/*
Package authsdk provides a client SDK for the email authentication service.

# Overview

Logging in is two calls. RequestCode makes the service email a one-time
8 digit code to the address; Exchange trades that code for an API token and
returns a Session that sends it as a bearer credential:

	client := authsdk.NewSDKClient("https://auth.example.com")

	if err := client.RequestCode(ctx, "a@b.com"); err != nil {
		if errors.Is(err, authsdk.ErrCodePending) {
			// a code was sent recently and is still usable
		}
		return err
	}

	session, err := client.Exchange(ctx, "a@b.com", code)
	if err != nil {
		return err
	}

	me, err := session.Me(ctx)

The token is checked against the service's database on every request, so a
revoked token stops working immediately. Logout revokes the session's own
token:

	err = session.Logout(ctx)

A carrier saved from an earlier Exchange can be reused with NewSession.

# Error Handling

Service errors are returned as *Error (compare with errors.Is against the
predefined values) or *ValidationError for rejected input. Requests are
validated client side with the same rules the server applies, so a
*ValidationError may be returned without a round trip.
*/
package authsdk
