package cli

import (
	"fmt"

	"backlog-cli/internal/store"
)

type invalidIDError struct {
	arg string
}

func (e invalidIDError) Error() string {
	return fmt.Sprintf("invalid item id: %q", e.arg)
}

func errNoEpic(id uint64) error {
	return store.NotFoundError{Kind: "epic", ID: id}
}
