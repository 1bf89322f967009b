package reconcile

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/multierr"

	"github.com/blueanchorhq/procurement-gateway/internal/upstream"
	pkgerrors "github.com/blueanchorhq/procurement-gateway/pkg/errors"
	"github.com/blueanchorhq/procurement-gateway/pkg/logger"
	"github.com/blueanchorhq/procurement-gateway/pkg/types"
)

// VendorCreator persists ad hoc vendor names server-side.
type VendorCreator interface {
	CreateVendor(ctx context.Context, token, name string) (*upstream.Vendor, error)
}

// ItemPatcher sends one item's change-set to the backend.
type ItemPatcher interface {
	UpdateItem(ctx context.Context, token, requestID, itemID string, changes map[string]any) (*upstream.UpdateItemResult, error)
}

// Saver batches per-item diffs across all dirty rows of a table: it creates
// pending ad hoc vendors first, fans the item patches out concurrently, and
// reconciles local state from whatever canonical data the backend returns.
type Saver struct {
	vendors VendorCreator
	items   ItemPatcher
	logg    *logger.Logger
}

// NewSaver validates dependencies and builds a Saver.
func NewSaver(vendors VendorCreator, items ItemPatcher, logg *logger.Logger) (*Saver, error) {
	if vendors == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "vendor creator is required")
	}
	if items == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "item patcher is required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger is required")
	}
	return &Saver{vendors: vendors, items: items, logg: logg}, nil
}

// Outcome summarizes one save batch.
type Outcome struct {
	Saved  int
	Failed int

	// FailedItems holds the ids of the rows whose patch did not persist;
	// their overlays stay dirty.
	FailedItems []string

	// Refreshed holds the canonical item list when the backend returned one;
	// the table has already been resynced from it.
	Refreshed []upstream.Item
}

type pendingPatch struct {
	overlay *ItemOverlay
	changes map[string]any
}

// SaveAll saves every dirty overlay in the table. Failures are aggregated and
// leave their overlays dirty; successes are committed even when siblings
// fail. With no dirty rows it returns a no-changes error without touching the
// network.
func (s *Saver) SaveAll(ctx context.Context, token string, table *Table) (*Outcome, error) {
	dirty := table.DirtyOverlays()
	if len(dirty) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNoChanges, "no changes to save")
	}

	patches := make([]pendingPatch, 0, len(dirty))
	for _, overlay := range dirty {
		changes := BuildDiff(overlay, table.Kind)
		if len(changes) == 0 {
			// Edited back to the server values; nothing to send.
			overlay.ClearDirty()
			continue
		}
		patches = append(patches, pendingPatch{overlay: overlay, changes: changes})
	}
	if len(patches) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNoChanges, "no changes to save")
	}

	s.createPendingVendors(ctx, token, table, patches)

	outcome := &Outcome{}
	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		saveErr   error
		refreshed []upstream.Item
	)

	for _, patch := range patches {
		wg.Add(1)
		go func(patch pendingPatch) {
			defer wg.Done()
			result, err := s.items.UpdateItem(ctx, token, table.RequestID, patch.overlay.Current.ID, patch.changes)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				outcome.Failed++
				outcome.FailedItems = append(outcome.FailedItems, patch.overlay.Current.ID)
				saveErr = multierr.Append(saveErr, fmt.Errorf("item %s: %w", patch.overlay.Current.ID, err))
				return
			}
			outcome.Saved++
			patch.overlay.ClearDirty()
			if result != nil && len(result.Items) > 0 {
				refreshed = result.Items
			}
		}(patch)
	}
	wg.Wait()

	if len(refreshed) > 0 && saveErr == nil {
		table.ResyncAll(refreshed)
		outcome.Refreshed = refreshed
	}

	return outcome, saveErr
}

// createPendingVendors persists ad hoc vendor names before the item fan-out
// and remaps the new ids onto every overlay using that name. A failed
// creation is logged and the item update proceeds without a resolved id.
func (s *Saver) createPendingVendors(ctx context.Context, token string, table *Table, patches []pendingPatch) {
	created := make(map[string]string)

	for _, patch := range patches {
		if !patch.overlay.PendingVendor() {
			continue
		}
		name := patch.overlay.Current.Vendor.Display()
		if name == "" {
			continue
		}

		id, ok := created[name]
		if !ok {
			vendor, err := s.vendors.CreateVendor(ctx, token, name)
			if err != nil {
				s.logg.Error(s.logg.WithField(ctx, "vendor_name", name), "vendor.create_pending failed", err)
				continue
			}
			id = vendor.ID
			created[name] = id
		}

		s.remapVendor(table, name, id)
		if _, exists := patch.changes[fieldVendor]; exists {
			patch.changes[fieldVendor] = id
		}
	}

	// Sibling patches may reference the same newly created vendor.
	for _, patch := range patches {
		if value, exists := patch.changes[fieldVendor]; exists {
			if name, isName := value.(string); isName {
				if id, ok := created[name]; ok {
					patch.changes[fieldVendor] = id
				}
			}
		}
	}
}

func (s *Saver) remapVendor(table *Table, name, id string) {
	for _, overlay := range table.Overlays {
		if overlay.Current.Vendor.Pending() && overlay.Current.Vendor.Display() == name {
			overlay.Current.Vendor = types.VendorRef{ID: id, Name: name}
		}
	}
}
