// Package sweep replays credential pairs against a login endpoint.
package sweep

// Pair is one (username, password) candidate.
type Pair struct {
	Username string
	Password string
}

// Payload is the JSON body sent for each pair. RememberMe is a string on the
// wire, not a boolean.
type Payload struct {
	LoginUsername string `json:"loginUsername"`
	LoginPassword string `json:"loginPassword"`
	Token         string `json:"token"`
	RememberMe    string `json:"rememberMe"`
}

// Pairs returns the cross product of usernames and passwords with the
// password varying fastest.
func Pairs(usernames, passwords []string) []Pair {
	pairs := make([]Pair, 0, len(usernames)*len(passwords))
	for _, u := range usernames {
		for _, p := range passwords {
			pairs = append(pairs, Pair{Username: u, Password: p})
		}
	}
	return pairs
}
