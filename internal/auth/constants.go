package auth

// AuthCookieName is the httpOnly cookie carrying the operator token.
// Shared by the HTTP middleware and the websocket upgrade.
const AuthCookieName = "deck_token"

// OperatorSubject is the JWT subject issued to the deck operator.
const OperatorSubject = "operator"
