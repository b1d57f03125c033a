package store

// The token registry maps opaque session tokens to usernames. Each token
// belongs to exactly one username; a username may hold several live tokens,
// one per login.

// InsertToken records a freshly issued session token.
func (s *Store) InsertToken(token, username string) {
	s.state.Tokens[token] = username
	s.SetDirty()
}

// RemoveToken deletes a session token, reporting whether it existed.
func (s *Store) RemoveToken(token string) bool {
	_, ok := s.state.Tokens[token]
	if ok {
		delete(s.state.Tokens, token)
	}
	s.SetDirty()
	return ok
}

// UsernameForToken resolves a session token to its username.
func (s *Store) UsernameForToken(token string) (string, bool) {
	username, ok := s.state.Tokens[token]
	return username, ok
}

// purgeTokens drops every token bound to the username. Called when the
// account is removed.
func (s *Store) purgeTokens(username string) {
	for token, owner := range s.state.Tokens {
		if owner == username {
			delete(s.state.Tokens, token)
		}
	}
}
