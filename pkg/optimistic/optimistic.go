package optimistic

import "fmt"

// Apply runs the local mutation first, then attempts the remote persist.
// When the persist fails, reconcile replaces local state with the canonical
// remote copy so the mirror never silently diverges; the persist error is
// still returned to the caller. This is the single write policy shared by
// every weekly bucket store.
func Apply(mutate func(), persist func() error, reconcile func() error) error {
	mutate()

	if err := persist(); err != nil {
		if rerr := reconcile(); rerr != nil {
			return fmt.Errorf("%w (reconcile also failed: %v)", err, rerr)
		}
		return err
	}
	return nil
}
