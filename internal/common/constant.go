package common

// AccessTokenHeaderName is the HTTP header used to carry the access token on
// outbound requests to the remote store.
const AccessTokenHeaderName = "Authorization"

// NotesMaxLen is the maximum number of characters allowed in a log entry's
// personal notes; longer input is truncated before persistence.
const NotesMaxLen = 60
