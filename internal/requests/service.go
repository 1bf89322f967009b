package requests

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/blueanchorhq/procurement-gateway/internal/reconcile"
	"github.com/blueanchorhq/procurement-gateway/internal/upstream"
	"github.com/blueanchorhq/procurement-gateway/pkg/enums"
	pkgerrors "github.com/blueanchorhq/procurement-gateway/pkg/errors"
	"github.com/blueanchorhq/procurement-gateway/pkg/pagination"
	"github.com/blueanchorhq/procurement-gateway/pkg/types"
)

// Service defines the behavior needed by the requests controllers.
type Service interface {
	List(ctx context.Context, token string, params pagination.Params) ([]upstream.Request, error)
	GetTable(ctx context.Context, token, requestID string, kind enums.TableKind) (*TableView, error)
	SaveTable(ctx context.Context, token, requestID string, kind enums.TableKind, edits []ItemEdit) (*SaveOutcome, error)
	Attach(ctx context.Context, token, requestID, sourceRequestID string, itemIDs []string) ([]upstream.Item, error)
	Detach(ctx context.Context, token, requestID, itemID string) ([]upstream.Item, error)
}

type backendClient interface {
	GetRequest(ctx context.Context, token, requestID string) (*upstream.Request, error)
	ListRequests(ctx context.Context, token string, params pagination.Params) ([]upstream.Request, error)
	ListVendors(ctx context.Context, token string, params pagination.Params) ([]upstream.Vendor, error)
	AttachItems(ctx context.Context, token, requestID, sourceRequestID string, itemIDs []string) ([]upstream.Item, error)
	DetachItem(ctx context.Context, token, requestID, itemID string) ([]upstream.Item, error)
}

type saver interface {
	SaveAll(ctx context.Context, token string, table *reconcile.Table) (*reconcile.Outcome, error)
}

type service struct {
	backend backendClient
	saver   saver
}

// ServiceParams bundles the dependencies required to build a requests service.
type ServiceParams struct {
	Backend backendClient
	Saver   saver
}

// NewService constructs the requests service.
func NewService(params ServiceParams) (Service, error) {
	if params.Backend == nil {
		return nil, fmt.Errorf("backend client is required")
	}
	if params.Saver == nil {
		return nil, fmt.Errorf("saver is required")
	}
	return &service{backend: params.Backend, saver: params.Saver}, nil
}

func (s *service) List(ctx context.Context, token string, params pagination.Params) ([]upstream.Request, error) {
	params.Limit = pagination.NormalizeLimit(params.Limit)
	return s.backend.ListRequests(ctx, token, params)
}

// GetTable fetches the request and vendor directory, normalizes every item's
// vendor reference, and assembles the grouped table view.
func (s *service) GetTable(ctx context.Context, token, requestID string, kind enums.TableKind) (*TableView, error) {
	table, request, _, err := s.loadTable(ctx, token, requestID, kind)
	if err != nil {
		return nil, err
	}
	return buildView(table, request), nil
}

// SaveTable replays the submitted edits onto a freshly loaded table and runs
// the save batch. Rows the client never touched stay clean, so the diff and
// fan-out cover exactly the submitted edits. When only part of the batch
// persists, the outcome is returned alongside the error so callers can report
// which rows failed.
func (s *service) SaveTable(ctx context.Context, token, requestID string, kind enums.TableKind, edits []ItemEdit) (*SaveOutcome, error) {
	table, request, nameByID, err := s.loadTable(ctx, token, requestID, kind)
	if err != nil {
		return nil, err
	}

	for _, edit := range edits {
		if err := applyEdit(table, edit, nameByID); err != nil {
			return nil, err
		}
	}

	outcome, err := s.saver.SaveAll(ctx, token, table)
	if err != nil {
		if outcome == nil {
			return nil, err
		}
		return &SaveOutcome{
			Saved:       outcome.Saved,
			Failed:      outcome.Failed,
			FailedItems: outcome.FailedItems,
			Table:       buildView(table, request),
		}, batchFailure(outcome, err)
	}

	return &SaveOutcome{
		Saved:     outcome.Saved,
		Failed:    outcome.Failed,
		Refreshed: outcome.Refreshed,
		Table:     buildView(table, request),
	}, nil
}

// batchFailure wraps the aggregated save error with enough detail for the
// error envelope: counts, the failed item ids, and the per-item messages.
func batchFailure(outcome *reconcile.Outcome, err error) error {
	failures := make([]string, 0, outcome.Failed)
	for _, itemErr := range multierr.Errors(err) {
		failures = append(failures, itemErr.Error())
	}
	message := fmt.Sprintf("%d of %d item(s) failed to save", outcome.Failed, outcome.Saved+outcome.Failed)
	return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, message).WithDetails(map[string]any{
		"saved":        outcome.Saved,
		"failed":       outcome.Failed,
		"failed_items": outcome.FailedItems,
		"failures":     failures,
	})
}

func (s *service) Attach(ctx context.Context, token, requestID, sourceRequestID string, itemIDs []string) ([]upstream.Item, error) {
	return s.backend.AttachItems(ctx, token, requestID, sourceRequestID, itemIDs)
}

func (s *service) Detach(ctx context.Context, token, requestID, itemID string) ([]upstream.Item, error) {
	return s.backend.DetachItem(ctx, token, requestID, itemID)
}

// loadTable fetches the request and resolves vendor references against the
// vendor directory before building the editable table.
func (s *service) loadTable(ctx context.Context, token, requestID string, kind enums.TableKind) (*reconcile.Table, *upstream.Request, map[string]string, error) {
	request, err := s.backend.GetRequest(ctx, token, requestID)
	if err != nil {
		return nil, nil, nil, err
	}

	vendors, err := s.backend.ListVendors(ctx, token, pagination.Params{Limit: pagination.MaxLimit})
	if err != nil {
		return nil, nil, nil, err
	}
	nameByID := make(map[string]string, len(vendors))
	for _, vendor := range vendors {
		nameByID[vendor.ID] = vendor.Name
	}

	for i := range request.Items {
		request.Items[i].Vendor = request.Items[i].Vendor.Resolve(nameByID)
	}

	table, err := reconcile.NewTable(kind, request)
	if err != nil {
		return nil, nil, nil, err
	}
	return table, request, nameByID, nil
}

// applyEdit replays one row's submitted fields in a fixed order so vendor and
// quantity changes land before the payment recomputation. Vendor edits resolve
// against the directory so an existing vendor's name or id never turns into a
// pending ad hoc vendor.
func applyEdit(table *reconcile.Table, edit ItemEdit, nameByID map[string]string) error {
	if edit.ItemID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}

	if edit.Vendor != nil {
		if err := table.SetVendor(edit.ItemID, types.VendorRef{Raw: *edit.Vendor}.Resolve(nameByID)); err != nil {
			return err
		}
	}
	if edit.Quantity != nil {
		if err := table.SetQuantity(edit.ItemID, reconcile.ParseAmount(*edit.Quantity)); err != nil {
			return err
		}
	}
	if edit.UnitPrice != nil {
		if err := table.SetUnitPrice(edit.ItemID, reconcile.ParseAmount(*edit.UnitPrice)); err != nil {
			return err
		}
	}
	if edit.ShippingQuantity != nil {
		if err := table.SetShippingQuantity(edit.ItemID, reconcile.ParseAmount(*edit.ShippingQuantity)); err != nil {
			return err
		}
	}
	if edit.Fee != nil {
		if err := table.SetFee(edit.ItemID, reconcile.ParseAmount(*edit.Fee)); err != nil {
			return err
		}
	}
	if edit.Currency != nil {
		if err := table.SetCurrency(edit.ItemID, *edit.Currency); err != nil {
			return err
		}
	}
	if edit.PaymentStatus != nil {
		status, err := enums.ParsePaymentStatus(*edit.PaymentStatus)
		if err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "payment status is invalid")
		}
		if err := table.SetPaymentStatus(edit.ItemID, status); err != nil {
			return err
		}
	}
	if edit.PercentagePaid != nil {
		if err := table.SetPercentagePaid(edit.ItemID, reconcile.ParseAmount(*edit.PercentagePaid)); err != nil {
			return err
		}
	}
	return nil
}

// buildView renders the grouped, totalled table.
func buildView(table *reconcile.Table, request *upstream.Request) *TableView {
	hides := table.Kind.HidesPrices()
	view := &TableView{
		RequestID:     table.RequestID,
		Kind:          table.Kind,
		WorkflowState: request.WorkflowState,
		Stages:        WorkflowStages(request.Type),
		HidesPrices:   hides,
	}

	total := decimal.Zero
	for _, group := range table.Groups() {
		groupView := GroupView{
			Vendor: group.Vendor.Display(),
			Fee:    group.Fee,
			Items:  make([]ItemView, 0, len(group.Overlays)),
		}
		for _, overlay := range group.Overlays {
			item := overlay.Current
			effective := table.EffectiveTotal(overlay)
			row := ItemView{
				ID:                 item.ID,
				Description:        item.Description,
				Maker:              item.Maker,
				PartNo:             item.PartNo,
				Quantity:           item.Quantity,
				ShippingQuantity:   item.ShippingQuantity,
				Currency:           item.Currency,
				Vendor:             item.Vendor.Display(),
				PaymentStatus:      item.PaymentStatus.String(),
				PercentagePaid:     item.PercentagePaid,
				Paid:               item.Paid,
				Balance:            item.Balance,
				EffectiveTotal:     effective,
				MovedFromRequestID: item.MovedFromRequestID,
				IsAttached:         item.IsAttached,
			}
			if !hides {
				price := item.UnitPrice
				discount := item.DiscountPercent
				row.UnitPrice = &price
				row.DiscountPercent = &discount
			}
			groupView.Items = append(groupView.Items, row)
			if !hides {
				total = total.Add(effective)
			}
		}
		// A fee-hiding group is charged once, not per row.
		if hides {
			total = total.Add(group.Fee)
		}
		view.Groups = append(view.Groups, groupView)
	}
	view.Total = total.Round(2)
	return view
}
