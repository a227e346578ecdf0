package store

import "backlog-cli/internal/model"

// MemoryBackend keeps the last written snapshot in memory. It backs store and
// navigator tests so the integrity logic can be exercised without a filesystem.
type MemoryBackend struct {
	state model.State
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{state: model.NewState()}
}

func (b *MemoryBackend) ReadState() (model.State, error) {
	return b.state.Clone(), nil
}

func (b *MemoryBackend) WriteState(st model.State) error {
	b.state = st.Clone()
	return nil
}
