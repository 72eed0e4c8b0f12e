package auth

// MemoryStore is an in-memory auth store for tests.
type MemoryStore struct {
	tokens map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]string)}
}

func (m *MemoryStore) SetToken(provider string, token string) error {
	m.tokens[NormalizeProvider(provider)] = token
	return nil
}

func (m *MemoryStore) GetToken(provider string) (string, error) {
	token, ok := m.tokens[NormalizeProvider(provider)]
	if !ok {
		return "", ErrTokenNotFound
	}
	return token, nil
}

func (m *MemoryStore) DeleteToken(provider string) error {
	key := NormalizeProvider(provider)
	if _, ok := m.tokens[key]; !ok {
		return ErrTokenNotFound
	}
	delete(m.tokens, key)
	return nil
}
